package parser

import (
	"fmt"
)

var (
	ErrUnknownType            = fmt.Errorf("parser: unknown type")
	ErrMalformedInteger       = fmt.Errorf("parser: malformed integer")
	ErrMalformedSignature     = fmt.Errorf("parser: malformed signature")
	ErrUnknownParameterType   = fmt.Errorf("parser: parameter has no type")
	ErrMissingLengthParameter = fmt.Errorf("parser: binary parameter has no length parameter")

	ErrUnknownIdentifier     = fmt.Errorf("parser: unknown identifier")
	ErrMissingArguments      = fmt.Errorf("parser: missing arguments")
	ErrArgumentCountMismatch = fmt.Errorf("parser: argument count mismatch")
	ErrInvalidArgument       = fmt.Errorf("parser: invalid argument")
	ErrLengthMismatch        = fmt.Errorf("parser: declared length does not match payload")

	ErrMalformedLength   = fmt.Errorf("parser: malformed length field")
	ErrMissingTerminator = fmt.Errorf("parser: body is not followed by CRLF")
)

// SignatureError is returned when a template cannot be compiled.
type SignatureError struct {
	Signature string
	err       error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("%s (signature %q)", e.err.Error(), e.Signature)
}

func (e *SignatureError) Unwrap() error {
	return e.err
}

// ArgumentError reports a message whose frame was intact but whose
// arguments could not be converted. The message has been consumed.
type ArgumentError struct {
	Identifier string
	Param      string
	err        error
}

func (e *ArgumentError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s", e.Identifier, e.err.Error())
	}
	return fmt.Sprintf("%s <%s>: %s", e.Identifier, e.Param, e.err.Error())
}

func (e *ArgumentError) Unwrap() error {
	return e.err
}

// FrameError reports a message whose framing cannot be trusted. Nothing has
// been consumed and the stream cannot be resynchronized.
type FrameError struct {
	Identifier string
	err        error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Identifier, e.err.Error())
}

func (e *FrameError) Unwrap() error {
	return e.err
}
