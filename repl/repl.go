// Package repl is an interactive command loop over a suffix tree: add
// sequences, then query them. The CLI routes its one-shot query flags
// through the same command evaluator.
package repl // import "stree.io/stree/repl"

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"fortio.org/log"

	"stree.io/stree/seq"
	"stree.io/stree/tree"
)

const Prompt = "> "

// Interactive reads commands from in until EOF or "quit", evaluating
// each against t.
func Interactive(t *tree.Tree, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			return
		}
		if !One(t, scanner.Text(), out) {
			return
		}
	}
}

// One evaluates a single command line against t and returns false when
// the loop should stop.
func One(t *tree.Tree, line string, out io.Writer) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprint(out, helpText)
	case "add":
		if len(args) != 2 {
			log.Errf("usage: add <id> <sequence>")
			return true
		}
		if err := t.AddString(args[0], args[1]); err != nil {
			log.Errf("%v", err)
		}
	case "find":
		if len(args) != 1 {
			log.Errf("usage: find <needle>")
			return true
		}
		fmt.Fprintln(out, t.Find(seq.FromString(args[0])))
	case "findid":
		if len(args) != 2 {
			log.Errf("usage: findid <id> <needle>")
			return true
		}
		found, err := t.FindID(args[0], seq.FromString(args[1]))
		if err != nil {
			log.Errf("%v", err)
			return true
		}
		fmt.Fprintln(out, found)
	case "all":
		if len(args) != 1 {
			log.Errf("usage: all <needle>")
			return true
		}
		for _, l := range FormatAll(t, seq.FromString(args[0])) {
			fmt.Fprintln(out, l)
		}
	case "common":
		minK := 2
		if len(args) == 1 {
			k, err := strconv.Atoi(args[0])
			if err != nil {
				log.Errf("common: %v", err)
				return true
			}
			minK = k
		}
		for _, c := range t.CommonSubstrings(minK) {
			fmt.Fprintf(out, "%d %d %s\n", c.K, c.Length, c.Path)
		}
	case "repeats":
		for _, l := range FormatRepeats(t) {
			fmt.Fprintln(out, l)
		}
	case "dot":
		fmt.Fprint(out, t.ToDot())
	default:
		log.Errf("unknown command %q, try help", cmd)
	}
	return true
}

// FormatAll renders every occurrence of needle as "id: suffix", sorted
// for stable output.
func FormatAll(t *tree.Tree, needle []seq.Symbol) []string {
	var lines []string
	for id, p := range t.FindAll(needle) {
		lines = append(lines, fmt.Sprintf("%v: %s", id, p))
	}
	sort.Strings(lines)
	return lines
}

// FormatRepeats renders the maximal repeats as "C path", sorted.
func FormatRepeats(t *tree.Tree) []string {
	repeats := t.MaximalRepeats()
	sort.Slice(repeats, func(i, j int) bool {
		if repeats[i].C != repeats[j].C {
			return repeats[i].C < repeats[j].C
		}
		return repeats[i].Path.Less(repeats[j].Path)
	})
	lines := make([]string, 0, len(repeats))
	for _, r := range repeats {
		lines = append(lines, fmt.Sprintf("%d %s", r.C, r.Path))
	}
	return lines
}

const helpText = `commands:
  add <id> <sequence>     add a sequence (one symbol per rune)
  find <needle>           is needle a substring of any sequence?
  findid <id> <needle>    is needle a substring of sequence id?
  all <needle>            list every occurrence of needle
  common [min_k]          longest substrings common to k sequences
  repeats                 maximal repeats
  dot                     dump the tree in GraphViz format
  quit                    leave
`
