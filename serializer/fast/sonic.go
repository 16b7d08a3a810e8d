//go:build amd64 && (linux || windows || darwin)

package fast

import (
	"github.com/karagenc/beanproto/serializer"
	"github.com/karagenc/beanproto/serializer/sonic"
)

func New() serializer.JSONSerializer {
	return sonic.New(DefaultConfig().SonicConfig)
}

func NewWithConfig(config Config) serializer.JSONSerializer {
	return sonic.New(config.SonicConfig)
}

// Platform returns the engine New picks on this platform.
func Platform() Engine {
	return EngineSonic
}
