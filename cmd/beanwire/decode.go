package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/karagenc/beanproto/jsonview"
	"github.com/karagenc/beanproto/parser"
	"github.com/karagenc/beanproto/serializer/fast"
)

func runDecode(args []string) error {
	var (
		o    options
		text bool
	)
	flags := newFlagSet("decode")
	o.register(flags)
	flags.BoolVarP(&text, "text", "t", false, "Print one line of text per message instead of JSON")
	if err := flags.Parse(args); err != nil {
		return err
	}

	input := io.Reader(os.Stdin)
	if flags.NArg() > 0 {
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	p, err := o.protocol()
	if err != nil {
		return err
	}
	s, err := fast.ByName(o.engine)
	if err != nil {
		return err
	}

	dir := o.direction()
	r := p.NewReader(input, dir)
	enc := s.NewEncoder(os.Stdout)
	out := newPrinter(os.Stdout)

	for {
		msg, err := r.ReadMessage()
		if err == io.EOF {
			return nil
		}
		var argErr *parser.ArgumentError
		if errors.As(err, &argErr) {
			fmt.Fprintf(os.Stderr, "Skipped: %s\n", argErr)
			continue
		}
		if err != nil {
			return err
		}

		if text {
			out.print(msg)
			continue
		}
		view, err := jsonview.New(dir, msg)
		if err != nil {
			return err
		}
		if err := enc.Encode(view); err != nil {
			return err
		}
	}
}
