package parser

import (
	"github.com/mitchellh/mapstructure"
)

// Message is one decoded message.
type Message struct {
	Identifier string
	Args       *Args

	// Unrecognized is set when Identifier is not registered. Identifier then
	// holds the whole first line and Args is empty.
	Unrecognized bool
}

// Args holds decoded arguments in declaration order.
type Args struct {
	names  []string
	values map[string]any
}

func NewArgs() *Args {
	return newArgs(0)
}

func newArgs(size int) *Args {
	return &Args{
		names:  make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

func (a *Args) Set(name string, v any) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

func (a *Args) Get(name string) (v any, ok bool) {
	if a == nil {
		return nil, false
	}
	v, ok = a.values[name]
	return
}

func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

func (a *Args) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

func (a *Args) Values() []any {
	if a == nil {
		return nil
	}
	values := make([]any, len(a.names))
	for i, name := range a.names {
		values[i] = a.values[name]
	}
	return values
}

// Map returns a copy of the arguments keyed by parameter name.
func (a *Args) Map() map[string]any {
	m := make(map[string]any, a.Len())
	if a == nil {
		return m
	}
	for name, v := range a.values {
		m[name] = v
	}
	return m
}

func (a *Args) Int(name string) (int64, bool) {
	v, _ := a.Get(name)
	n, ok := v.(int64)
	return n, ok
}

func (a *Args) Text(name string) (string, bool) {
	v, _ := a.Get(name)
	s, ok := v.(string)
	return s, ok
}

func (a *Args) Bytes(name string) ([]byte, bool) {
	v, _ := a.Get(name)
	b, ok := v.([]byte)
	return b, ok
}

// Decode copies the arguments into out, which must be a pointer to a struct
// or a map. Struct fields are matched by their `arg` tag, falling back to a
// case insensitive match on the field name.
func (a *Args) Decode(out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "arg",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return d.Decode(a.Map())
}

func (a *Args) ordered(params []string) ([]any, error) {
	return Named(a.Map()).ordered(params)
}
