package beanproto

import (
	"io"

	"github.com/karagenc/beanproto/parser"
)

const defaultReadSize = 4096

// Reader reads messages of one direction from a byte stream, such as the
// server side of a connection reading commands.
type Reader struct {
	r      io.Reader
	parser *parser.Parser
	chunk  []byte
	err    error
	debug  Debugger
}

func (p *Protocol) NewReader(r io.Reader, dir parser.Direction) *Reader {
	return &Reader{
		r:      r,
		parser: p.NewParser(dir),
		chunk:  make([]byte, defaultReadSize),
		debug:  p.debug.WithContext("[beanproto/reader] " + dir.String()),
	}
}

// ReadMessage blocks until a whole message has arrived.
//
// A *parser.ArgumentError only concerns the message that was skipped and
// ReadMessage may be called again. io.ErrUnexpectedEOF is returned if the
// stream ends in the middle of a message.
func (r *Reader) ReadMessage() (*parser.Message, error) {
	for {
		msg, err := r.parser.Next()
		if err != nil {
			r.debug.Log("decode", err)
			return nil, err
		}
		if msg != nil {
			return msg, nil
		}

		if r.err != nil {
			if r.err == io.EOF && r.parser.Buffered() > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, r.err
		}

		var n int
		n, r.err = r.r.Read(r.chunk)
		if n > 0 {
			r.parser.Write(r.chunk[:n])
		}
	}
}

// Buffered returns the number of bytes received but not decoded yet.
func (r *Reader) Buffered() int {
	return r.parser.Buffered()
}

// Writer writes encoded messages of one direction to a byte stream.
type Writer struct {
	w     io.Writer
	p     *Protocol
	dir   parser.Direction
	debug Debugger
}

func (p *Protocol) NewWriter(w io.Writer, dir parser.Direction) *Writer {
	return &Writer{
		w:     w,
		p:     p,
		dir:   dir,
		debug: p.debug.WithContext("[beanproto/writer] " + dir.String()),
	}
}

// WriteMessage encodes and writes one message. Nothing is written if
// encoding fails.
func (w *Writer) WriteMessage(identifier string, args parser.Arguments) error {
	b, err := w.p.Encode(w.dir, identifier, args)
	if err != nil {
		w.debug.Log("encode", identifier, err)
		return err
	}
	_, err = w.w.Write(b)
	return err
}

// WritePayload is WriteMessage with the length parameters of binary bodies
// computed. See parser.Registry.EncodeWithPayload.
func (w *Writer) WritePayload(identifier string, args parser.Arguments) error {
	b, err := w.p.EncodeWithPayload(w.dir, identifier, args)
	if err != nil {
		w.debug.Log("encode", identifier, err)
		return err
	}
	_, err = w.w.Write(b)
	return err
}
