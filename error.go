package beanproto

// InternalError wraps errors that are caused by beanproto itself rather
// than by the caller or the peer, such as a built-in signature that fails
// to compile.
type InternalError struct {
	err error
}

func (e InternalError) Error() string {
	return "beanproto: internal error: " + e.err.Error()
}

func (e InternalError) Unwrap() error {
	return e.err
}

func wrapInternalError(err error) *InternalError {
	return &InternalError{err: err}
}
