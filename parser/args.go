package parser

import (
	"fmt"

	"github.com/fatih/structs"
)

// Arguments are the values handed to the encoder, either by position
// (Positional) or by parameter name (Named, Struct, *Args).
type Arguments interface {
	// Len reports how many values were supplied.
	Len() int

	ordered(params []string) ([]any, error)
}

type positional []any

// Positional supplies arguments in the order the parameters are declared.
func Positional(v ...any) Arguments {
	return positional(v)
}

func (p positional) Len() int { return len(p) }

func (p positional) ordered(params []string) ([]any, error) {
	if len(p) != len(params) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrArgumentCountMismatch, len(params), len(p))
	}
	return p, nil
}

type named map[string]any

// Named supplies arguments keyed by parameter name.
func Named(m map[string]any) Arguments {
	return named(m)
}

func (n named) Len() int { return len(n) }

func (n named) ordered(params []string) ([]any, error) {
	values := make([]any, len(params))
	for i, name := range params {
		v, ok := n[name]
		if !ok {
			return nil, fmt.Errorf("%w: <%s>", ErrMissingArguments, name)
		}
		values[i] = v
	}
	return values, nil
}

// Struct supplies the exported fields of v, keyed by their `arg` tag or by
// field name. Fields tagged `arg:"-"` are skipped and `arg:",omitempty"`
// drops zero values.
func Struct(v any) (Arguments, error) {
	if !structs.IsStruct(v) {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrInvalidArgument, v)
	}
	s := structs.New(v)
	s.TagName = "arg"
	return named(s.Map()), nil
}
