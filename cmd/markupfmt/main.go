// Command markupfmt is a smoke-test binary exercising ParseHTML ->
// WriteHTML end to end: it reads a document from stdin (or the file named
// by its one argument) and writes it back out, re-serialized.
package main

import (
	"fmt"
	"os"

	"github.com/heathj/gomarkup/markup"
)

func main() {
	r := os.Stdin
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	cfg := markup.Config{
		Report: func(e *markup.ParseError) error {
			fmt.Fprintln(os.Stderr, e.Error())
			return nil
		},
	}

	stream := markup.ParseHTML(cfg, r)
	if err := markup.WriteHTML(os.Stdout, stream); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
