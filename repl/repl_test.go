package repl_test

import (
	"strings"
	"testing"

	"stree.io/stree/repl"
	"stree.io/stree/seq"
	"stree.io/stree/tree"
)

func run(t *testing.T, script string) string {
	t.Helper()
	tr := tree.New()
	out := strings.Builder{}
	repl.Interactive(tr, strings.NewReader(script), &out)
	return out.String()
}

func TestInteractiveSession(t *testing.T) {
	got := run(t, `add A xabxac
add B awyawxawxz
find abx
find abc
findid B awx
findid B abx
all xa
quit
`)
	for _, want := range []string{
		"> true\n",  // find abx
		"> false\n", // find abc
		"A: x a b x a c $\n",
		"A: x a c $\n",
		"B: x a w x z $\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, repl.Prompt) {
		t.Errorf("missing final prompt: %q", got)
	}
}

func TestCommonAndRepeats(t *testing.T) {
	got := run(t, `add A xabxac
add B awyawxawxz
repeats
common
`)
	for _, want := range []string{
		"1 a w\n", "1 a w x\n", "2 a\n", "2 x\n", "2 x a\n",
		"2 2 x a\n", // common: k=2, length 2, one representative
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}

func TestDotCommand(t *testing.T) {
	got := run(t, "add A ab\ndot\n")
	if !strings.Contains(got, "strict digraph G {") {
		t.Errorf("dot output missing:\n%s", got)
	}
}

func TestEmptyAndUnknownCommands(t *testing.T) {
	// neither blank lines nor junk stop the loop
	got := run(t, "\n\nbogus\nfind a\n")
	if !strings.Contains(got, "false\n") {
		t.Errorf("loop did not survive junk input:\n%s", got)
	}
}

func TestFormatRepeats(t *testing.T) {
	tr := tree.New()
	if err := tr.AddString("A", "xabxac"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	lines := repl.FormatRepeats(tr)
	if len(lines) != 1 || lines[0] != "1 x a" {
		t.Errorf("FormatRepeats = %v, want [1 x a]", lines)
	}
}

func TestFormatAll(t *testing.T) {
	tr := tree.New()
	if err := tr.AddString("A", "abab"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	lines := repl.FormatAll(tr, seq.FromString("ab"))
	if len(lines) != 2 || lines[0] != "A: a b $" || lines[1] != "A: a b a b $" {
		t.Errorf("FormatAll = %v", lines)
	}
}
