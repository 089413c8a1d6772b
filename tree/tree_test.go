package tree_test

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"stree.io/stree/seq"
	"stree.io/stree/tree"
)

// every test runs under all three builders
func forAllBuilders(t *testing.T, f func(t *testing.T, b tree.Builder)) {
	t.Helper()
	for _, b := range tree.Builders {
		t.Run(b.Name(), func(t *testing.T) { f(t, b) })
	}
}

func build(t *testing.T, b tree.Builder, d map[string]string) *tree.Tree {
	t.Helper()
	tr := tree.New(b)
	for id, s := range d {
		if err := tr.AddString(id, s); err != nil {
			t.Fatalf("AddString(%s): %v", id, err)
		}
	}
	if err := tr.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	return tr
}

func find(tr *tree.Tree, s string) bool {
	return tr.Find(seq.FromString(s))
}

func TestFindGusfield51(t *testing.T) {
	// Gusfield 1997, figure 5.1, page 91
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := build(t, b, map[string]string{"A": "xabxac"})
		for _, s := range []string{
			"x", "xa", "xab", "xabx", "xabxa", "xabxac",
			"abxac", "bxac", "xac", "ac", "c",
		} {
			if !find(tr, s) {
				t.Errorf("find(%q) = false", s)
			}
		}
		for _, s := range []string{"xabxacx", "d", "xx", "xabxaa", "abc"} {
			if find(tr, s) {
				t.Errorf("find(%q) = true", s)
			}
		}
	})
}

func TestFindGusfield52(t *testing.T) {
	// Gusfield 1997, figure 5.2, page 92
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := build(t, b, map[string]string{"A": "awyawxawxz"})
		if !find(tr, "awx") || !find(tr, "awy") {
			t.Errorf("missing substrings of awyawxawxz")
		}
		if find(tr, "awz") {
			t.Errorf("find(awz) = true")
		}
	})
}

func TestFindGusfield71(t *testing.T) {
	// Gusfield 1997, figure 7.1, page 129
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := build(t, b, map[string]string{"A": "xyxaxaxa"})
		for _, s := range []string{"xyxaxaxa", "xax", "axa"} {
			if !find(tr, s) {
				t.Errorf("find(%q) = false", s)
			}
		}
		if find(tr, "ay") {
			t.Errorf("find(ay) = true")
		}
	})
}

func TestFindMultiSymbolSequences(t *testing.T) {
	// Symbols need not be characters; these sequences use whole words.
	fields := func(s string) []seq.Symbol {
		var syms []seq.Symbol
		for _, w := range strings.Fields(s) {
			syms = append(syms, w)
		}
		return syms
	}
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := tree.New(b)
		for id, s := range map[string]string{
			"A": "232 020b 092 093 039 061 102 135 098 099 039 040 039 040 044 141 140 098",
			"B": "097 098 039 040 041 129 043",
			"C": "097 098 039 040 020a 022 023 097 095 094 098 043 044 112 039 020b 039 098",
		} {
			if err := tr.Add(id, fields(s)); err != nil {
				t.Fatalf("Add(%s): %v", id, err)
			}
		}
		if err := tr.CheckInvariants(); err != nil {
			t.Fatalf("invariants: %v", err)
		}
		for _, s := range []string{
			"039 040 041", "039 040 039 040", "020a 022 023",
			"232 020b 092", "097 098 039 040", "141 140 098",
		} {
			if !tr.Find(fields(s)) {
				t.Errorf("Find(%q) = false", s)
			}
		}
		if tr.Find(fields("039 040 042")) {
			t.Errorf("Find(039 040 042) = true")
		}
	})
}

func countAll(tr *tree.Tree, s string) int {
	n := 0
	for range tr.FindAll(seq.FromString(s)) {
		n++
	}
	return n
}

func TestFindAllCounts(t *testing.T) {
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := build(t, b, map[string]string{
			"A": "aaaaa", "B": "bbbb", "C": "ccc", "D": "dd", "E": "e",
		})
		for s, want := range map[string]int{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1, "f": 0} {
			if got := countAll(tr, s); got != want {
				t.Errorf("len(find_all(%q)) = %d, want %d", s, got, want)
			}
		}

		tr = build(t, b, map[string]string{
			"A": "a", "B": "ab", "C": "abc", "D": "abcd", "E": "abcde",
		})
		for s, want := range map[string]int{"abcde": 1, "abcd": 2, "abc": 3, "ab": 4, "a": 5} {
			if got := countAll(tr, s); got != want {
				t.Errorf("len(find_all(%q)) = %d, want %d", s, got, want)
			}
		}

		tr = build(t, b, map[string]string{
			"A": "abcde", "B": "bcde", "C": "cde", "D": "de", "E": "e",
		})
		for s, want := range map[string]int{"abcde": 1, "bcde": 2, "cde": 3, "de": 4, "e": 5} {
			if got := countAll(tr, s); got != want {
				t.Errorf("len(find_all(%q)) = %d, want %d", s, got, want)
			}
		}
	})
}

func TestFindAllPaths(t *testing.T) {
	// the suffix paths include the end markers
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := build(t, b, map[string]string{"A": "xabxac", "B": "awyawxawxz"})
		var got []string
		for id, p := range tr.FindAll(seq.FromString("xa")) {
			got = append(got, fmt.Sprintf("%v:%s", id, p))
		}
		sort.Strings(got)
		want := []string{
			"A:x a b x a c $",
			"A:x a c $",
			"B:x a w x z $",
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("find_all(xa) = %v, want %v", got, want)
		}
		if n := countAll(tr, "abc"); n != 0 {
			t.Errorf("find_all(abc) yielded %d results", n)
		}
	})
}

func TestFindAllStopsEarly(t *testing.T) {
	tr := build(t, tree.McCreight{}, map[string]string{"A": "aaaa"})
	n := 0
	for range tr.FindAll(seq.FromString("a")) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("break did not stop the iterator")
	}
}

func TestFindID(t *testing.T) {
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := build(t, b, map[string]string{"A": "xabxac", "B": "awyawxawxz"})
		for _, tc := range []struct {
			id, needle string
			want       bool
		}{
			{"A", "abx", true},
			{"B", "awx", true},
			{"B", "abx", false},
			{"A", "awx", false},
		} {
			got, err := tr.FindID(tc.id, seq.FromString(tc.needle))
			if err != nil {
				t.Fatalf("FindID(%s, %s): %v", tc.id, tc.needle, err)
			}
			if got != tc.want {
				t.Errorf("FindID(%s, %s) = %v, want %v", tc.id, tc.needle, got, tc.want)
			}
		}
		if _, err := tr.FindID("Z", seq.FromString("a")); !errors.Is(err, tree.ErrUnknownID) {
			t.Errorf("FindID(Z) error = %v, want ErrUnknownID", err)
		}
	})
}

func TestMixedSymbolSequences(t *testing.T) {
	// one sequence may mix symbol types
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		set := [3]int{1, 2, 3}
		tup := struct{ a, b, c int }{1, 2, 3}
		tr := tree.New(b)
		if err := tr.Add(1, []seq.Symbol{true, 10, set, "hello", tup}); err != nil {
			t.Fatalf("Add(1): %v", err)
		}
		if err := tr.Add(2, []seq.Symbol{tup, "hello", set, 10, true}); err != nil {
			t.Fatalf("Add(2): %v", err)
		}
		if err := tr.CheckInvariants(); err != nil {
			t.Fatalf("invariants: %v", err)
		}
		if !tr.Find([]seq.Symbol{true, 10, set}) {
			t.Errorf("Find([true 10 set]) = false")
		}
		if !tr.Find([]seq.Symbol{set, 10, true}) {
			t.Errorf("Find([set 10 true]) = false")
		}
		if tr.Find([]seq.Symbol{true, 10, "hello"}) {
			t.Errorf("Find([true 10 hello]) = true")
		}
	})
}

func TestAddErrors(t *testing.T) {
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := tree.New(b)
		if err := tr.AddString("A", "abc"); err != nil {
			t.Fatalf("first add: %v", err)
		}
		err := tr.AddString("A", "xyz")
		if !errors.Is(err, tree.ErrDuplicateID) {
			t.Errorf("duplicate add error = %v, want ErrDuplicateID", err)
		}
		// the failed add must not have changed the tree
		if find(tr, "xyz") {
			t.Errorf("rejected sequence is findable")
		}
		if err := tr.CheckInvariants(); err != nil {
			t.Errorf("invariants after rejected add: %v", err)
		}
		if err := tr.Add("B", nil); !errors.Is(err, tree.ErrEmptySequence) {
			t.Errorf("empty add error = %v, want ErrEmptySequence", err)
		}
	})
}

func TestFromMap(t *testing.T) {
	tr, err := tree.FromMap(map[seq.ID][]seq.Symbol{
		"A": seq.FromString("xabxac"),
		"B": seq.FromString("awyawxawxz"),
	}, tree.Ukkonen{})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if !find(tr, "abx") || !find(tr, "awx") || find(tr, "abc") {
		t.Errorf("FromMap tree answers wrong")
	}
	if _, err := tree.FromMap(map[seq.ID][]seq.Symbol{"A": {}}); !errors.Is(err, tree.ErrEmptySequence) {
		t.Errorf("FromMap with empty sequence: %v", err)
	}
}

func TestEmptyNeedle(t *testing.T) {
	tr := build(t, tree.McCreight{}, map[string]string{"A": "ab"})
	if !tr.Find(nil) {
		t.Errorf("the empty needle is a substring of everything")
	}
}

func TestProgressCallback(t *testing.T) {
	forAllBuilders(t, func(t *testing.T, b tree.Builder) {
		tr := tree.New(b)
		var phases []int
		tr.SetProgress(4, func(phase int) { phases = append(phases, phase) })
		if err := tr.AddString("A", "abracadabra"); err != nil {
			t.Fatalf("AddString: %v", err)
		}
		if len(phases) == 0 {
			t.Fatalf("progress callback never ran")
		}
		for _, p := range phases {
			if p%4 != 0 {
				t.Errorf("callback at phase %d, want multiples of 4", p)
			}
		}
	})
}
