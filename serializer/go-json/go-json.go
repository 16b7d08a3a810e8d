// Package gojson adapts github.com/goccy/go-json, carrying its options into
// every call including streaming ones.
package gojson

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/karagenc/beanproto/serializer"
)

type gojsonSerializer struct {
	encodeOptions []json.EncodeOptionFunc
	decodeOptions []json.DecodeOptionFunc
}

func New(encodeOptions []json.EncodeOptionFunc, decodeOptions []json.DecodeOptionFunc) serializer.JSONSerializer {
	return &gojsonSerializer{
		encodeOptions: encodeOptions,
		decodeOptions: decodeOptions,
	}
}

func (s *gojsonSerializer) Marshal(v any) ([]byte, error) {
	return json.MarshalWithOption(v, s.encodeOptions...)
}

func (s *gojsonSerializer) Unmarshal(data []byte, v any) error {
	return json.UnmarshalWithOption(data, v, s.decodeOptions...)
}

func (s *gojsonSerializer) NewEncoder(w io.Writer) serializer.JSONEncoder {
	return &streamEncoder{enc: json.NewEncoder(w), options: s.encodeOptions}
}

func (s *gojsonSerializer) NewDecoder(r io.Reader) serializer.JSONDecoder {
	return &streamDecoder{dec: json.NewDecoder(r), options: s.decodeOptions}
}

type streamEncoder struct {
	enc     *json.Encoder
	options []json.EncodeOptionFunc
}

func (e *streamEncoder) Encode(v any) error {
	return e.enc.EncodeWithOption(v, e.options...)
}

type streamDecoder struct {
	dec     *json.Decoder
	options []json.DecodeOptionFunc
}

func (d *streamDecoder) Decode(v any) error {
	return d.dec.DecodeWithOption(v, d.options...)
}
