// Package fast picks the quickest JSON engine available on the build
// platform: sonic where it is supported, go-json everywhere else.
package fast

import (
	"github.com/bytedance/sonic"
	"github.com/goccy/go-json"
	"github.com/karagenc/beanproto/serializer"
	gojson "github.com/karagenc/beanproto/serializer/go-json"
	"github.com/karagenc/beanproto/serializer/stdjson"
)

type Config struct {
	SonicConfig sonic.Config
	GoJSON      GoJSONConfig
}

type GoJSONConfig struct {
	EncodeOptions []json.EncodeOptionFunc
	DecodeOptions []json.DecodeOptionFunc
}

func DefaultConfig() Config {
	return Config{
		SonicConfig: sonic.Config{
			// Decoded views outlive the input line.
			CopyString:       true,
			CompactMarshaler: true,
			EscapeHTML:       true,
			// Views carry no maps; argument order is kept by a slice.
			SortMapKeys: false,
		},
		GoJSON: GoJSONConfig{
			EncodeOptions: []json.EncodeOptionFunc{
				json.UnorderedMap(),
			},
		},
	}
}

// ByName returns the engine called name: "fast", "sonic", "go-json" or
// "std". "sonic" falls back to go-json where sonic is not supported.
func ByName(name string) (serializer.JSONSerializer, error) {
	e, err := ParseEngine(name)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	switch e {
	case EngineSonic:
		return NewWithConfig(config), nil
	case EngineGoJSON:
		return gojson.New(config.GoJSON.EncodeOptions, config.GoJSON.DecodeOptions), nil
	case EngineStd:
		return stdjson.New(), nil
	}
	return New(), nil
}
