package parser

import (
	"fmt"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
)

type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindText
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindText:
		return "Text"
	case KindBinary:
		return "Binary"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Type converts an argument between its wire form and a typed Go value.
//
// Integer values are int64, Text values are string and Binary values are
// []byte. Parse never retains b.
type Type interface {
	Kind() Kind
	Parse(b []byte) (any, error)
	Format(v any) ([]byte, error)
}

var (
	Integer Type = integerType{}
	Text    Type = textType{}
	Binary  Type = binaryType{}
)

type integerType struct{}

func (integerType) Kind() Kind { return KindInteger }

func (integerType) Parse(b []byte) (any, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedInteger, b)
	}
	return n, nil
}

func (integerType) Format(v any) ([]byte, error) {
	switch n := v.(type) {
	case int:
		return strconv.AppendInt(nil, int64(n), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(n), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(n), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(n), 10), nil
	case int64:
		return strconv.AppendInt(nil, n, 10), nil
	case uint:
		return strconv.AppendUint(nil, uint64(n), 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(n), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(n), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(n), 10), nil
	case uint64:
		return strconv.AppendUint(nil, n, 10), nil
	}
	return nil, fmt.Errorf("%w: %T is not an integer", ErrInvalidArgument, v)
}

type textType struct{}

func (textType) Kind() Kind { return KindText }

func (textType) Parse(b []byte) (any, error) { return string(b), nil }

func (textType) Format(v any) ([]byte, error) {
	var b []byte
	switch s := v.(type) {
	case string:
		b = []byte(s)
	case []byte:
		b = append([]byte(nil), s...)
	case fmt.Stringer:
		b = []byte(s.String())
	default:
		return nil, fmt.Errorf("%w: %T is not text", ErrInvalidArgument, v)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidArgument)
	}
	for _, c := range b {
		if c == ' ' || c == '\r' || c == '\n' {
			return nil, fmt.Errorf("%w: text %q contains a separator", ErrInvalidArgument, b)
		}
	}
	return b, nil
}

type binaryType struct{}

func (binaryType) Kind() Kind { return KindBinary }

func (binaryType) Parse(b []byte) (any, error) {
	buf := make([]byte, len(b))
	copy(buf, b)
	return buf, nil
}

func (binaryType) Format(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, fmt.Errorf("%w: %T is not binary", ErrInvalidArgument, v)
}

// TypeTable maps parameter names to their Type. Registrations made after
// construction live in an overlay that Reset discards.
type TypeTable struct {
	defaults map[string]Type
	overlay  map[string]Type
}

func NewTypeTable(defaults map[string]Type) *TypeTable {
	d := make(map[string]Type, len(defaults))
	for name, typ := range defaults {
		d[name] = typ
	}
	return &TypeTable{
		defaults: d,
		overlay:  make(map[string]Type),
	}
}

func (t *TypeTable) Register(name string, typ Type) {
	t.overlay[name] = typ
}

func (t *TypeTable) Resolve(name string) (Type, error) {
	if typ, ok := t.overlay[name]; ok {
		return typ, nil
	}
	if typ, ok := t.defaults[name]; ok {
		return typ, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

func (t *TypeTable) Names() mapset.Set[string] {
	names := mapset.NewThreadUnsafeSetWithSize[string](len(t.defaults) + len(t.overlay))
	for name := range t.defaults {
		names.Add(name)
	}
	for name := range t.overlay {
		names.Add(name)
	}
	return names
}

func (t *TypeTable) Reset() {
	t.overlay = make(map[string]Type)
}
