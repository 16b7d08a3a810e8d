package parser

import (
	mapset "github.com/deckarep/golang-set/v2"
)

type Direction uint8

const (
	// DirectionCommand covers messages sent by clients.
	DirectionCommand Direction = iota + 1
	// DirectionReply covers messages sent by servers.
	DirectionReply
)

func (d Direction) String() string {
	switch d {
	case DirectionCommand:
		return "command"
	case DirectionReply:
		return "reply"
	}
	return "unknown"
}

// Catalog is the built-in set of signatures and types a Registry is seeded
// with. Reset returns a Registry to exactly this state.
type Catalog struct {
	Types    map[string]Type
	Commands []string
	Replies  []string
}

// Registry holds the compiled specs of both directions and the type table
// they are compiled against.
//
// A Registry is not safe for concurrent use. Decode and Encode only read
// it, so concurrent calls are fine as long as nothing is added or reset
// meanwhile.
type Registry struct {
	types    *TypeTable
	commands *specTable
	replies  *specTable
}

func NewRegistry(catalog *Catalog) (*Registry, error) {
	if catalog == nil {
		catalog = new(Catalog)
	}
	r := &Registry{
		types:    NewTypeTable(catalog.Types),
		commands: newSpecTable(),
		replies:  newSpecTable(),
	}
	for _, signature := range catalog.Commands {
		if err := r.AddCommand(signature); err != nil {
			return nil, err
		}
	}
	for _, signature := range catalog.Replies {
		if err := r.AddReply(signature); err != nil {
			return nil, err
		}
	}
	r.commands.freeze()
	r.replies.freeze()
	return r, nil
}

func (r *Registry) AddType(name string, typ Type) {
	r.types.Register(name, typ)
}

func (r *Registry) AddCommand(signature string) error {
	return r.Add(DirectionCommand, signature)
}

func (r *Registry) AddReply(signature string) error {
	return r.Add(DirectionReply, signature)
}

// Add compiles signature and registers it for dir. A failed compilation
// leaves the registry untouched.
func (r *Registry) Add(dir Direction, signature string) error {
	spec, err := Compile(signature, r.types)
	if err != nil {
		return err
	}
	r.table(dir).add(spec)
	return nil
}

// Reset drops every type and spec registered after construction.
func (r *Registry) Reset() {
	r.types.Reset()
	r.commands.reset()
	r.replies.reset()
}

func (r *Registry) Spec(dir Direction, identifier string) (*Spec, bool) {
	return r.table(dir).get(identifier)
}

func (r *Registry) Command(identifier string) (*Spec, bool) {
	return r.commands.get(identifier)
}

func (r *Registry) Reply(identifier string) (*Spec, bool) {
	return r.replies.get(identifier)
}

func (r *Registry) Identifiers(dir Direction) mapset.Set[string] {
	return r.table(dir).identifiers()
}

func (r *Registry) Commands() mapset.Set[string] { return r.commands.identifiers() }

func (r *Registry) Replies() mapset.Set[string] { return r.replies.identifiers() }

func (r *Registry) Types() *TypeTable { return r.types }

func (r *Registry) table(dir Direction) *specTable {
	if dir == DirectionReply {
		return r.replies
	}
	return r.commands
}

type specTable struct {
	defaults map[string]*Spec
	overlay  map[string]*Spec
}

func newSpecTable() *specTable {
	return &specTable{
		defaults: make(map[string]*Spec),
		overlay:  make(map[string]*Spec),
	}
}

func (t *specTable) get(identifier string) (*Spec, bool) {
	if spec, ok := t.overlay[identifier]; ok {
		return spec, true
	}
	spec, ok := t.defaults[identifier]
	return spec, ok
}

func (t *specTable) add(spec *Spec) {
	existing, ok := t.get(spec.Identifier)
	if !ok {
		t.overlay[spec.Identifier] = spec
		return
	}
	if merged := existing.merge(spec); merged != existing {
		t.overlay[spec.Identifier] = merged
	}
}

func (t *specTable) freeze() {
	for identifier, spec := range t.overlay {
		t.defaults[identifier] = spec
	}
	t.overlay = make(map[string]*Spec)
}

func (t *specTable) reset() {
	t.overlay = make(map[string]*Spec)
}

func (t *specTable) identifiers() mapset.Set[string] {
	s := mapset.NewThreadUnsafeSetWithSize[string](len(t.defaults) + len(t.overlay))
	for identifier := range t.defaults {
		s.Add(identifier)
	}
	for identifier := range t.overlay {
		s.Add(identifier)
	}
	return s
}
