package main

import (
	"fmt"
	"io"
	"os"

	"github.com/karagenc/beanproto"
	"github.com/karagenc/beanproto/jsonview"
	"github.com/karagenc/beanproto/parser"
	"github.com/karagenc/beanproto/serializer/fast"
)

func runEncode(args []string) error {
	var (
		o        options
		payload  bool
		fromJSON bool
	)
	flags := newFlagSet("encode")
	o.register(flags)
	flags.BoolVarP(&payload, "payload", "p", false, "Compute length arguments from the body instead of taking them from the command line")
	flags.BoolVarP(&fromJSON, "json", "j", false, "Read JSON views from stdin")
	if err := flags.Parse(args); err != nil {
		return err
	}

	p, err := o.protocol()
	if err != nil {
		return err
	}
	dir := o.direction()
	w := p.NewWriter(os.Stdout, dir)

	if fromJSON {
		s, err := fast.ByName(o.engine)
		if err != nil {
			return err
		}
		dec := s.NewDecoder(os.Stdin)
		for {
			var view jsonview.View
			if err := dec.Decode(&view); err == io.EOF {
				return nil
			} else if err != nil {
				return err
			}
			msg, err := view.Message()
			if err != nil {
				return err
			}
			if err := w.WriteMessage(msg.Identifier, msg.Args); err != nil {
				return err
			}
		}
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing identifier")
	}
	identifier := flags.Arg(0)
	values, err := convertArgs(p, dir, identifier, flags.Args()[1:], payload)
	if err != nil {
		return err
	}
	if payload {
		return w.WritePayload(identifier, parser.Positional(values...))
	}
	return w.WriteMessage(identifier, parser.Positional(values...))
}

// convertArgs parses command line arguments with the types of the
// parameters they stand for.
func convertArgs(p *beanproto.Protocol, dir parser.Direction, identifier string, args []string, payload bool) ([]any, error) {
	var (
		spec *parser.Spec
		ok   bool
	)
	if dir == parser.DirectionReply {
		spec, ok = p.ReplySpec(identifier)
	} else {
		spec, ok = p.CommandSpec(identifier)
	}
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", dir, identifier)
	}

	params := make([]string, 0, len(spec.Params))
	lengths := make(map[string]bool)
	if payload {
		for _, name := range spec.Params {
			if l, ok := spec.LengthParam(name); ok {
				lengths[l] = true
			}
		}
	}
	for _, name := range spec.Params {
		if !lengths[name] {
			params = append(params, name)
		}
	}
	if len(args) > len(params) {
		return nil, fmt.Errorf("%s takes at most %d arguments", identifier, len(params))
	}

	values := make([]any, len(args))
	for i, arg := range args {
		typ, err := p.ResolveType(params[i])
		if err != nil {
			return nil, err
		}
		v, err := typ.Parse([]byte(arg))
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", params[i], err)
		}
		values[i] = v
	}
	return values, nil
}
