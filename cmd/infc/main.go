package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"infinity/internal/codegen"
)

var (
	exitFn  = os.Exit
	writeFn = codegen.WriteFile
)

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: infc [-o out.asm] [-v] <sample>")
	fmt.Fprintln(w, "       infc -list")
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("infc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outPath := fs.String("o", "", "output path, default <sample>.asm, - for stdout")
	list := fs.Bool("list", false, "list the sample programs")
	verbose := fs.Bool("v", false, "print compile time")
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *list {
		for _, s := range samples {
			fmt.Fprintf(stdout, "%-10s %s\n", s.name, s.description)
		}
		return 0
	}
	if fs.NArg() != 1 {
		usage(stderr)
		return 1
	}

	name := fs.Arg(0)
	s, ok := findSample(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown sample %q, try -list\n", name)
		return 1
	}

	started := time.Now()
	asm, err := compileSample(s)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	path := *outPath
	if path == "" {
		path = name + ".asm"
	}
	if path == "-" {
		fmt.Fprint(stdout, asm)
	} else {
		if err := writeFn(path, asm); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	}
	if *verbose {
		fmt.Fprintf(stderr, "Compiled successfully in %d ms\n", time.Since(started).Milliseconds())
	}
	return 0
}
