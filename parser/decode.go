package parser

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// An identifier of at least one byte followed by CRLF.
const minHeaderLen = 1 + len(CRLF)

// Decode reads at most one message from the front of buf.
//
// If buf does not hold a complete message yet, buf is returned unchanged
// with a nil message and a nil error; append more bytes and call again.
// Otherwise rest holds the bytes after the message, or nil if there are
// none.
//
// An identifier that is not registered yields a message flagged as
// Unrecognized rather than an error. An *ArgumentError means the message was
// consumed but its arguments were invalid. A *FrameError means buf cannot be
// framed; it is returned unchanged and the stream should be abandoned.
func (r *Registry) Decode(dir Direction, buf []byte) (rest []byte, msg *Message, err error) {
	if len(buf) < minHeaderLen {
		return buf, nil, nil
	}
	boundary := bytes.Index(buf, crlf)
	if boundary == -1 {
		return buf, nil, nil
	}

	specs := r.table(dir)
	line := buf[:boundary]
	end := boundary + len(crlf)

	if bytes.IndexByte(line, ' ') == -1 {
		spec, ok := specs.get(string(line))
		if ok && (len(spec.Params) == 0 || spec.ArityOptional) {
			return tail(buf, end), &Message{Identifier: spec.Identifier, Args: newArgs(0)}, nil
		}
	}

	tokens := bytes.Split(line, space)
	identifier := string(tokens[0])
	spec, ok := specs.get(identifier)
	if !ok {
		return tail(buf, end), &Message{Identifier: string(line), Args: newArgs(0), Unrecognized: true}, nil
	}
	raw := tokens[1:]

	if len(raw) != len(spec.Lines[0]) {
		if !spec.IsMultiline() {
			return tail(buf, end), nil, &ArgumentError{
				Identifier: identifier,
				err:        fmt.Errorf("%w: expected %d, got %d", ErrArgumentCountMismatch, len(spec.Lines[0]), len(raw)),
			}
		}
		return buf, nil, &FrameError{
			Identifier: identifier,
			err:        fmt.Errorf("%w: header has %d arguments, expected %d", ErrArgumentCountMismatch, len(raw), len(spec.Lines[0])),
		}
	}

	if spec.IsMultiline() {
		var complete bool
		raw, end, complete, err = r.frameBody(spec, buf, raw, end)
		if err != nil {
			return buf, nil, err
		}
		if !complete {
			return buf, nil, nil
		}
	}

	args := newArgs(len(spec.Params))
	for i, name := range spec.Params {
		typ, err := r.types.Resolve(name)
		if err != nil {
			return tail(buf, end), nil, &ArgumentError{Identifier: identifier, Param: name, err: err}
		}
		v, err := typ.Parse(raw[i])
		if err != nil {
			return tail(buf, end), nil, &ArgumentError{Identifier: identifier, Param: name, err: err}
		}
		args.Set(name, v)
	}

	return tail(buf, end), &Message{Identifier: identifier, Args: args}, nil
}

// frameBody collects the raw values of every body line following the
// header, which ends at offset. It reports complete=false if buf is too
// short.
func (r *Registry) frameBody(spec *Spec, buf []byte, raw [][]byte, offset int) ([][]byte, int, bool, error) {
	values := make([][]byte, len(raw), len(spec.Params))
	copy(values, raw)

	for _, params := range spec.Lines[1:] {
		if spec.isBodyLine(params) {
			body := params[0]
			lengthParam, _ := spec.LengthParam(body)
			n, err := parseLength(values[spec.index(lengthParam)])
			if err != nil {
				return nil, 0, false, &FrameError{Identifier: spec.Identifier, err: err}
			}
			if n > math.MaxInt-offset-len(crlf) {
				return nil, 0, false, &FrameError{
					Identifier: spec.Identifier,
					err:        fmt.Errorf("%w: <%s> declared %d bytes", ErrMalformedLength, body, n),
				}
			}
			if n > len(buf)-offset-len(crlf) {
				return nil, 0, false, nil
			}
			if !bytes.Equal(buf[offset+n:offset+n+len(crlf)], crlf) {
				return nil, 0, false, &FrameError{
					Identifier: spec.Identifier,
					err:        fmt.Errorf("%w: <%s> declared %d bytes", ErrMissingTerminator, body, n),
				}
			}
			values = append(values, buf[offset:offset+n])
			offset += n + len(crlf)
			continue
		}

		boundary := bytes.Index(buf[offset:], crlf)
		if boundary == -1 {
			return nil, 0, false, nil
		}
		tokens := bytes.Split(buf[offset:offset+boundary], space)
		if len(tokens) != len(params) {
			return nil, 0, false, &FrameError{
				Identifier: spec.Identifier,
				err:        fmt.Errorf("%w: body line has %d arguments, expected %d", ErrArgumentCountMismatch, len(tokens), len(params)),
			}
		}
		values = append(values, tokens...)
		offset += boundary + len(crlf)
	}

	return values, offset, true, nil
}

func parseLength(b []byte) (int, error) {
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLength, b)
	}
	return n, nil
}

func tail(buf []byte, n int) []byte {
	if n >= len(buf) {
		return nil
	}
	return buf[n:]
}
