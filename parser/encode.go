package parser

import (
	"bytes"
	"fmt"
	"strconv"
)

// Encode renders identifier with args in wire form. args may be nil for
// messages without parameters, or for the bare form of an arity optional
// message.
func (r *Registry) Encode(dir Direction, identifier string, args Arguments) ([]byte, error) {
	spec, ok := r.table(dir).get(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownIdentifier, dir, identifier)
	}

	n := 0
	if args != nil {
		n = args.Len()
	}
	expected := len(spec.Params)

	if n == 0 {
		if expected > 0 && !spec.ArityOptional {
			return nil, fmt.Errorf("%w: %s expects %d", ErrMissingArguments, identifier, expected)
		}
		return []byte(identifier + CRLF), nil
	}
	if n != expected {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrArgumentCountMismatch, identifier, expected, n)
	}

	values, err := args.ordered(spec.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", identifier, err)
	}
	return r.render(spec, values)
}

// EncodeWithPayload is like Encode, except that args leave out every length
// parameter bound to a binary body. Those are computed from the bodies.
//
//	EncodeWithPayload(DirectionCommand, "put", Positional(0, 0, 60, []byte("ab")))
//
// renders "put 0 0 60 2\r\nab\r\n".
func (r *Registry) EncodeWithPayload(dir Direction, identifier string, args Arguments) ([]byte, error) {
	spec, ok := r.table(dir).get(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownIdentifier, dir, identifier)
	}
	if len(spec.lengths) == 0 {
		return r.Encode(dir, identifier, args)
	}
	if args == nil || args.Len() == 0 {
		return nil, fmt.Errorf("%w: %s requires a payload", ErrMissingArguments, identifier)
	}

	supplied := make([]string, 0, len(spec.Params))
	for _, name := range spec.Params {
		if !spec.isLengthParam(name) {
			supplied = append(supplied, name)
		}
	}
	if args.Len() != len(supplied) {
		return nil, fmt.Errorf("%w: %s expects %d without lengths, got %d", ErrArgumentCountMismatch, identifier, len(supplied), args.Len())
	}
	values, err := args.ordered(supplied)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", identifier, err)
	}

	full := make([]any, len(spec.Params))
	for i, name := range supplied {
		full[spec.index(name)] = values[i]
	}
	for body, length := range spec.lengths {
		payload, err := Binary.Format(full[spec.index(body)])
		if err != nil {
			return nil, &ArgumentError{Identifier: identifier, Param: body, err: err}
		}
		full[spec.index(length)] = len(payload)
	}
	return r.render(spec, full)
}

func (r *Registry) render(spec *Spec, values []any) ([]byte, error) {
	formatted := make([][]byte, len(values))
	size := len(spec.Identifier) + 1
	for i, name := range spec.Params {
		typ, err := r.types.Resolve(name)
		if err != nil {
			return nil, &ArgumentError{Identifier: spec.Identifier, Param: name, err: err}
		}
		b, err := typ.Format(values[i])
		if err != nil {
			return nil, &ArgumentError{Identifier: spec.Identifier, Param: name, err: err}
		}
		formatted[i] = b
		size += len(b) + 1
	}

	for body, length := range spec.lengths {
		declared := string(formatted[spec.index(length)])
		actual := strconv.Itoa(len(formatted[spec.index(body)]))
		if declared != actual {
			return nil, &ArgumentError{
				Identifier: spec.Identifier,
				Param:      length,
				err:        fmt.Errorf("%w: declared %s, <%s> has %s bytes", ErrLengthMismatch, declared, body, actual),
			}
		}
	}

	var buf bytes.Buffer
	buf.Grow(size + len(spec.Lines)*len(crlf))
	buf.WriteString(spec.Identifier)
	if len(spec.Lines[0]) > 0 {
		buf.WriteByte(' ')
	}

	offset := 0
	for _, params := range spec.Lines {
		for i := range params {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(formatted[offset+i])
		}
		offset += len(params)
		buf.Write(crlf)
	}
	return buf.Bytes(), nil
}
