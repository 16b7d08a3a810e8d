package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCatalog() *Catalog {
	return &Catalog{
		Types: map[string]Type{
			"pri":   Integer,
			"delay": Integer,
			"ttr":   Integer,
			"bytes": Integer,
			"id":    Integer,
			"count": Integer,
			"tube":  Text,
			"data":  Binary,
		},
		Commands: []string{
			"put <pri> <delay> <ttr> <bytes>\r\n<data>\r\n",
			"use <tube>\r\n",
			"reserve\r\n",
			"delete <id>\r\n",
			"release <id> <pri> <delay>\r\n",
			"watch <tube>\r\n",
			"ignore <tube>\r\n",
			"stats\r\n",
			"pause-tube <tube> <delay>\r\n",
		},
		Replies: []string{
			"INSERTED <id>\r\n",
			"BURIED <id>\r\n",
			"BURIED\r\n",
			"USING <tube>\r\n",
			"RESERVED <id> <bytes>\r\n<data>\r\n",
			"DELETED\r\n",
			"KICKED <count>\r\n",
			"KICKED\r\n",
			"OK <bytes>\r\n<data>\r\n",
		},
	}
}

func mustCreateRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(newTestCatalog())
	require.NoError(t, err)
	return r
}

func mustEncode(t *testing.T, r *Registry, dir Direction, identifier string, args Arguments) []byte {
	t.Helper()
	b, err := r.Encode(dir, identifier, args)
	require.NoError(t, err)
	return b
}

func mustDecode(t *testing.T, r *Registry, dir Direction, buf []byte) ([]byte, *Message) {
	t.Helper()
	rest, msg, err := r.Decode(dir, buf)
	require.NoError(t, err)
	return rest, msg
}
