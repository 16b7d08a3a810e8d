package beanproto

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/karagenc/beanproto/internal/sync"
	"github.com/karagenc/beanproto/parser"
)

type Config struct {
	// Catalog seeds the protocol and is what Reset returns to. If nil,
	// DefaultCatalog is used.
	Catalog *parser.Catalog

	// For debugging purposes. Leave it nil if it is of no use.
	Debugger Debugger
}

// Protocol encodes and decodes beanstalkd messages. It is safe for
// concurrent use; adding signatures or resetting waits for in-flight
// encode and decode calls.
type Protocol struct {
	registry *parser.Registry
	mu       sync.RWMutex
	debug    Debugger
}

func NewProtocol(config *Config) (*Protocol, error) {
	if config == nil {
		config = new(Config)
	}

	catalog := config.Catalog
	builtin := catalog == nil
	if builtin {
		catalog = DefaultCatalog()
	}

	registry, err := parser.NewRegistry(catalog)
	if err != nil {
		if builtin {
			return nil, wrapInternalError(err)
		}
		return nil, err
	}

	p := &Protocol{registry: registry}
	if config.Debugger != nil {
		p.debug = config.Debugger.WithContext("[beanproto]")
	} else {
		p.debug = NewNoopDebugger()
	}
	return p, nil
}

// Decode implements parser.Decoder.
func (p *Protocol) Decode(dir parser.Direction, buf []byte) (rest []byte, msg *parser.Message, err error) {
	p.mu.RLock()
	rest, msg, err = p.registry.Decode(dir, buf)
	p.mu.RUnlock()

	switch {
	case err != nil:
		p.debug.Log("decode", dir, err)
	case msg != nil && msg.Unrecognized:
		p.debug.Log("decode", dir, "unrecognized", msg.Identifier)
	}
	return
}

// ParseCommand decodes one command from the front of buf. See
// parser.Registry.Decode for the meaning of the results.
func (p *Protocol) ParseCommand(buf []byte) (rest []byte, msg *parser.Message, err error) {
	return p.Decode(parser.DirectionCommand, buf)
}

func (p *Protocol) ParseReply(buf []byte) (rest []byte, msg *parser.Message, err error) {
	return p.Decode(parser.DirectionReply, buf)
}

func (p *Protocol) Encode(dir parser.Direction, identifier string, args parser.Arguments) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Encode(dir, identifier, args)
}

func (p *Protocol) EncodeWithPayload(dir parser.Direction, identifier string, args parser.Arguments) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.EncodeWithPayload(dir, identifier, args)
}

func (p *Protocol) BuildCommand(command string, args parser.Arguments) ([]byte, error) {
	return p.Encode(parser.DirectionCommand, command, args)
}

func (p *Protocol) BuildReply(reply string, args parser.Arguments) ([]byte, error) {
	return p.Encode(parser.DirectionReply, reply, args)
}

// BuildPut builds a put command from priority, delay, time to run and the
// job body. The byte count is filled in.
func (p *Protocol) BuildPut(args parser.Arguments) ([]byte, error) {
	return p.EncodeWithPayload(parser.DirectionCommand, "put", args)
}

func (p *Protocol) AddType(name string, typ parser.Type) {
	p.mu.Lock()
	p.registry.AddType(name, typ)
	p.mu.Unlock()
	p.debug.Log("type added", name, typ.Kind())
}

func (p *Protocol) AddCommand(signature string) error {
	return p.add(parser.DirectionCommand, signature)
}

func (p *Protocol) AddReply(signature string) error {
	return p.add(parser.DirectionReply, signature)
}

func (p *Protocol) add(dir parser.Direction, signature string) error {
	p.mu.Lock()
	err := p.registry.Add(dir, signature)
	p.mu.Unlock()
	if err != nil {
		p.debug.Log("add", dir, err)
		return err
	}
	p.debug.Log("add", dir, signature)
	return nil
}

// Reset forgets every type, command and reply added since construction.
func (p *Protocol) Reset() {
	p.mu.Lock()
	p.registry.Reset()
	p.mu.Unlock()
	p.debug.Log("reset")
}

func (p *Protocol) CommandSpec(command string) (*parser.Spec, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Command(command)
}

func (p *Protocol) ReplySpec(reply string) (*parser.Spec, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Reply(reply)
}

func (p *Protocol) Commands() mapset.Set[string] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Commands()
}

func (p *Protocol) Replies() mapset.Set[string] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Replies()
}

func (p *Protocol) Types() mapset.Set[string] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Types().Names()
}

// ResolveType returns the type of the parameter called name.
func (p *Protocol) ResolveType(name string) (parser.Type, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.Types().Resolve(name)
}

// NewParser returns a buffering parser for one direction of a connection.
func (p *Protocol) NewParser(dir parser.Direction) *parser.Parser {
	return parser.NewParser(p, dir)
}
