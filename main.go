// Stree builds a generalized suffix tree over the sequences given on the
// command line and runs substring, common-substring and maximal-repeat
// queries against it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/struct2env"

	"stree.io/stree/repl"
	"stree.io/stree/tree"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	Builder string
}

var config = Config{Builder: "mccreight"}

// profiling hooks, see main_pprof.go
var hookBefore, hookAfter func() int

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("STREE_", res, true)
	fmt.Fprintln(w, "# Stree environment variables:")
	fmt.Fprint(w, str)
}

func Main() int {
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	errs := struct2env.SetFromEnv("STREE_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	builderFlag := flag.String("builder", config.Builder, "construction algorithm: `naive`, mccreight or ukkonen")
	findFlag := flag.String("find", "", "print whether `needle` is a substring of any sequence")
	findIDFlag := flag.String("find-id", "", "print whether needle is a substring of one sequence, as `id:needle`")
	allFlag := flag.String("all", "", "print every occurrence of `needle`")
	commonFlag := flag.Int("common", 0, "print the longest substrings common to at least `k` sequences, for each k up to the number of sequences")
	repeatsFlag := flag.Bool("repeats", false, "print the maximal repeats")
	dotFlag := flag.Bool("dot", false, "dump the tree in GraphViz format")
	interactiveFlag := flag.Bool("i", false, "interactive query loop after loading the sequences")

	cli.ArgsHelp = "id=sequence ... (one symbol per rune; use -i with no args to start empty)"
	cli.MinArgs = 0
	cli.MaxArgs = -1
	cli.Main()

	if hookBefore != nil {
		if ret := hookBefore(); ret != 0 {
			return ret
		}
	}
	b, err := tree.ByName(*builderFlag)
	if err != nil {
		return log.FErrf("%v", err)
	}
	t := tree.New(b)
	for _, arg := range flag.Args() {
		id, sequence, ok := strings.Cut(arg, "=")
		if !ok {
			return log.FErrf("argument %q is not of the form id=sequence", arg)
		}
		if err := t.AddString(id, sequence); err != nil {
			return log.FErrf("%v", err)
		}
	}
	log.LogVf("loaded %d sequence(s) with the %s builder", len(flag.Args()), b.Name())

	out := os.Stdout
	if *findFlag != "" {
		repl.One(t, "find "+*findFlag, out)
	}
	if *findIDFlag != "" {
		id, needle, ok := strings.Cut(*findIDFlag, ":")
		if !ok {
			return log.FErrf("-find-id wants id:needle, got %q", *findIDFlag)
		}
		repl.One(t, "findid "+id+" "+needle, out)
	}
	if *allFlag != "" {
		repl.One(t, "all "+*allFlag, out)
	}
	if *commonFlag > 0 {
		repl.One(t, fmt.Sprintf("common %d", *commonFlag), out)
	}
	if *repeatsFlag {
		repl.One(t, "repeats", out)
	}
	if *dotFlag {
		repl.One(t, "dot", out)
	}
	if *interactiveFlag {
		repl.Interactive(t, os.Stdin, out)
	}
	if hookAfter != nil {
		return hookAfter()
	}
	return 0
}
