//go:build !amd64 || (amd64 && !(linux || windows || darwin))

package fast

import (
	"github.com/karagenc/beanproto/serializer"
	gojson "github.com/karagenc/beanproto/serializer/go-json"
)

func New() serializer.JSONSerializer {
	config := DefaultConfig()
	return gojson.New(config.GoJSON.EncodeOptions, config.GoJSON.DecodeOptions)
}

func NewWithConfig(config Config) serializer.JSONSerializer {
	return gojson.New(config.GoJSON.EncodeOptions, config.GoJSON.DecodeOptions)
}

// Platform returns the engine New picks on this platform.
func Platform() Engine {
	return EngineGoJSON
}
