package fast

import "fmt"

// Engine names a JSON engine the CLI and views can be rendered with.
type Engine int

const (
	EngineFast Engine = iota
	EngineSonic
	EngineGoJSON
	EngineStd
)

var engineNames = [...]string{
	EngineFast:   "fast",
	EngineSonic:  "sonic",
	EngineGoJSON: "go-json",
	EngineStd:    "std",
}

func (e Engine) Name() string {
	if e < 0 || int(e) >= len(engineNames) {
		return "<invalid>"
	}
	return engineNames[e]
}

// ParseEngine maps a name accepted by ByName to its Engine. The empty name
// is EngineFast.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineFast, nil
	}
	for e, n := range engineNames {
		if n == name {
			return Engine(e), nil
		}
	}
	return 0, fmt.Errorf("serializer: unknown JSON engine %q", name)
}
