package parser

import (
	"fmt"
	"strings"
)

const CRLF = "\r\n"

var (
	crlf  = []byte(CRLF)
	space = []byte{' '}
)

// Spec is the compiled form of a message signature such as
//
//	put <pri> <delay> <ttr> <bytes>\r\n<data>\r\n
//
// Lines[0] holds the parameters of the header line, every following entry
// holds the parameters of one body line. A binary parameter on a body line
// is read by exact length, taken from the integer parameter it is bound to.
type Spec struct {
	Identifier string
	Lines      [][]string
	Params     []string

	// ArityOptional is set when the identifier was registered both with and
	// without parameters. Both wire forms are then accepted and produced.
	ArityOptional bool

	kinds   map[string]Kind
	lengths map[string]string
}

func (s *Spec) IsMultiline() bool {
	return len(s.Lines) > 1
}

// LengthParam returns the header parameter declaring the byte length of
// the binary body parameter body.
func (s *Spec) LengthParam(body string) (string, bool) {
	l, ok := s.lengths[body]
	return l, ok
}

func (s *Spec) isLengthParam(name string) bool {
	for _, l := range s.lengths {
		if l == name {
			return true
		}
	}
	return false
}

func (s *Spec) index(name string) int {
	for i, p := range s.Params {
		if p == name {
			return i
		}
	}
	return -1
}

func (s *Spec) isBodyLine(params []string) bool {
	if len(params) != 1 {
		return false
	}
	_, ok := s.lengths[params[0]]
	return ok
}

func (s *Spec) clone() *Spec {
	c := *s
	return &c
}

// merge folds a second registration of the same identifier into s. s itself
// is never modified.
func (s *Spec) merge(other *Spec) *Spec {
	if len(s.Params) == len(other.Params) {
		return s
	}
	merged := s.clone()
	merged.ArityOptional = true
	if len(s.Params) == 0 {
		merged.Lines = other.Lines
		merged.Params = other.Params
		merged.kinds = other.kinds
		merged.lengths = other.lengths
	}
	return merged
}

// Compile turns a CRLF terminated signature into a Spec. Every placeholder
// must name a parameter known to types.
//
// A binary parameter on a body line may name its length parameter
// explicitly, as in <data:bytes>. Otherwise it is bound to the closest
// preceding integer parameter.
func Compile(signature string, types *TypeTable) (*Spec, error) {
	fail := func(err error) (*Spec, error) {
		return nil, &SignatureError{Signature: signature, err: err}
	}

	if !strings.HasSuffix(signature, CRLF) {
		return fail(fmt.Errorf("%w: does not end in CRLF", ErrMalformedSignature))
	}
	lines := strings.Split(signature, CRLF)
	lines = lines[:len(lines)-1]

	header := strings.Split(lines[0], " ")
	if header[0] == "" {
		return fail(fmt.Errorf("%w: empty identifier", ErrMalformedSignature))
	}

	spec := &Spec{
		Identifier: header[0],
		Lines:      make([][]string, len(lines)),
		Params:     make([]string, 0, len(header)-1),
		kinds:      make(map[string]Kind),
		lengths:    make(map[string]string),
	}

	for i, line := range lines {
		tokens := header[1:]
		if i > 0 {
			if line == "" {
				return fail(fmt.Errorf("%w: empty body line", ErrMalformedSignature))
			}
			tokens = strings.Split(line, " ")
		}

		params := make([]string, 0, len(tokens))
		for _, token := range tokens {
			name, length, err := parsePlaceholder(token)
			if err != nil {
				return fail(err)
			}
			typ, err := types.Resolve(name)
			if err != nil {
				return fail(fmt.Errorf("%w: <%s>", ErrUnknownParameterType, name))
			}
			kind := typ.Kind()

			if kind == KindBinary && i > 0 {
				if len(tokens) != 1 {
					return fail(fmt.Errorf("%w: <%s> must be alone on its line", ErrMalformedSignature, name))
				}
				length, err = spec.bindLength(name, length)
				if err != nil {
					return fail(err)
				}
				spec.lengths[name] = length
			} else if length != "" {
				return fail(fmt.Errorf("%w: <%s> cannot carry a length", ErrMalformedSignature, name))
			}

			spec.kinds[name] = kind
			params = append(params, name)
		}
		spec.Lines[i] = params
		spec.Params = append(spec.Params, params...)
	}

	return spec, nil
}

func (s *Spec) bindLength(body, length string) (string, error) {
	if length != "" {
		if s.index(length) == -1 || s.kinds[length] != KindInteger {
			return "", fmt.Errorf("%w: <%s:%s>", ErrMissingLengthParameter, body, length)
		}
		return length, nil
	}
	for i := len(s.Params) - 1; i >= 0; i-- {
		name := s.Params[i]
		if s.kinds[name] == KindInteger && !s.isLengthParam(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: <%s>", ErrMissingLengthParameter, body)
}

func parsePlaceholder(token string) (name, length string, err error) {
	if len(token) < 3 || token[0] != '<' || token[len(token)-1] != '>' {
		return "", "", fmt.Errorf("%w: bad placeholder %q", ErrMalformedSignature, token)
	}
	name = token[1 : len(token)-1]
	if i := strings.IndexByte(name, ':'); i != -1 {
		name, length = name[:i], name[i+1:]
		if name == "" || length == "" {
			return "", "", fmt.Errorf("%w: bad placeholder %q", ErrMalformedSignature, token)
		}
	}
	return name, length, nil
}
