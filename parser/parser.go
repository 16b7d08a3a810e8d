package parser

import "errors"

type (
	Creator func() *Parser
	Finish  func(msg *Message)
)

// Decoder is implemented by Registry and by anything guarding one.
type Decoder interface {
	Decode(dir Direction, buf []byte) (rest []byte, msg *Message, err error)
}

// Parser buffers the bytes of one direction of a connection and feeds
// them to a Decoder, one message at a time.
type Parser struct {
	decoder Decoder
	dir     Direction
	buf     []byte
}

func NewParser(decoder Decoder, dir Direction) *Parser {
	return &Parser{
		decoder: decoder,
		dir:     dir,
	}
}

func NewCreator(decoder Decoder, dir Direction) Creator {
	return func() *Parser {
		return NewParser(decoder, dir)
	}
}

// Add appends data to the pending bytes and calls finish for every message
// that is now complete, in stream order. Bytes of an incomplete message are
// kept for the next call.
//
// An *ArgumentError skips the offending message and is returned after the
// remaining messages were delivered. A *FrameError stops decoding and the
// pending bytes are kept as they are; an earlier *ArgumentError is joined
// with it.
func (p *Parser) Add(data []byte, finish Finish) error {
	p.buf = append(p.buf, data...)

	var argErr error
	for len(p.buf) > 0 {
		rest, msg, err := p.decoder.Decode(p.dir, p.buf)
		if err != nil {
			if _, ok := err.(*ArgumentError); !ok {
				if argErr != nil {
					return errors.Join(argErr, err)
				}
				return err
			}
			if argErr == nil {
				argErr = err
			}
			p.consume(rest)
			continue
		}
		if msg == nil {
			break
		}
		p.consume(rest)
		finish(msg)
	}
	return argErr
}

// Next decodes one message from the pending bytes. It returns nil if more
// bytes are needed.
func (p *Parser) Next() (*Message, error) {
	rest, msg, err := p.decoder.Decode(p.dir, p.buf)
	if err != nil {
		if _, ok := err.(*ArgumentError); ok {
			p.consume(rest)
		}
		return nil, err
	}
	if msg != nil {
		p.consume(rest)
	}
	return msg, nil
}

// Write appends data to the pending bytes without decoding.
func (p *Parser) Write(data []byte) (int, error) {
	p.buf = append(p.buf, data...)
	return len(data), nil
}

// Buffered returns the number of pending bytes.
func (p *Parser) Buffered() int {
	return len(p.buf)
}

// Reset discards the pending bytes.
func (p *Parser) Reset() {
	p.buf = nil
}

func (p *Parser) consume(rest []byte) {
	if len(rest) == 0 {
		p.buf = p.buf[:0]
		return
	}
	n := copy(p.buf, rest)
	p.buf = p.buf[:n]
}
