// Package jsonview converts decoded messages to and from a JSON document
// that keeps argument order and distinguishes the three argument kinds.
package jsonview

import (
	"fmt"

	"github.com/karagenc/beanproto/parser"
	"github.com/karagenc/beanproto/serializer"
)

type View struct {
	Direction    string `json:"direction,omitempty"`
	Identifier   string `json:"identifier"`
	Args         []Arg  `json:"args"`
	Unrecognized bool   `json:"unrecognized,omitempty"`
}

// Arg holds exactly one of Int, Text and Binary. Binary is base64 encoded
// by every engine.
type Arg struct {
	Name   string  `json:"name"`
	Int    *int64  `json:"int,omitempty"`
	Text   *string `json:"text,omitempty"`
	Binary *[]byte `json:"binary,omitempty"`
}

var errEmptyArg = fmt.Errorf("jsonview: argument holds no value")

func New(dir parser.Direction, msg *parser.Message) (*View, error) {
	v := &View{
		Identifier:   msg.Identifier,
		Args:         make([]Arg, 0, msg.Args.Len()),
		Unrecognized: msg.Unrecognized,
	}
	if dir != 0 {
		v.Direction = dir.String()
	}

	for _, name := range msg.Args.Names() {
		value, _ := msg.Args.Get(name)
		arg := Arg{Name: name}
		switch x := value.(type) {
		case int64:
			arg.Int = &x
		case string:
			arg.Text = &x
		case []byte:
			arg.Binary = &x
		default:
			return nil, fmt.Errorf("jsonview: <%s> has unsupported type %T", name, value)
		}
		v.Args = append(v.Args, arg)
	}
	return v, nil
}

// Message converts v back into a message. Its Args can be handed to the
// encoder directly.
func (v *View) Message() (*parser.Message, error) {
	args := parser.NewArgs()
	for _, arg := range v.Args {
		switch {
		case arg.Int != nil:
			args.Set(arg.Name, *arg.Int)
		case arg.Text != nil:
			args.Set(arg.Name, *arg.Text)
		case arg.Binary != nil:
			args.Set(arg.Name, *arg.Binary)
		default:
			return nil, fmt.Errorf("%w: <%s>", errEmptyArg, arg.Name)
		}
	}
	return &parser.Message{
		Identifier:   v.Identifier,
		Args:         args,
		Unrecognized: v.Unrecognized,
	}, nil
}

func Marshal(s serializer.JSONSerializer, dir parser.Direction, msg *parser.Message) ([]byte, error) {
	v, err := New(dir, msg)
	if err != nil {
		return nil, err
	}
	return s.Marshal(v)
}

func Unmarshal(s serializer.JSONSerializer, data []byte) (*parser.Message, error) {
	var v View
	if err := s.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v.Message()
}
