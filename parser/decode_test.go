package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSingleLine(t *testing.T) {
	r := mustCreateRegistry(t)

	rest, msg := mustDecode(t, r, DirectionCommand, []byte("release 17 1024 5\r\n"))
	require.NotNil(t, msg)
	assert.Nil(t, rest)
	assert.Equal(t, "release", msg.Identifier)
	assert.False(t, msg.Unrecognized)
	assert.Equal(t, []string{"id", "pri", "delay"}, msg.Args.Names())
	assert.Equal(t, []any{int64(17), int64(1024), int64(5)}, msg.Args.Values())

	_, msg = mustDecode(t, r, DirectionCommand, []byte("use emails\r\n"))
	require.NotNil(t, msg)
	tube, ok := msg.Args.Text("tube")
	require.True(t, ok)
	assert.Equal(t, "emails", tube)
}

func TestDecodeWithoutParameters(t *testing.T) {
	r := mustCreateRegistry(t)

	rest, msg := mustDecode(t, r, DirectionCommand, []byte("reserve\r\n"))
	require.NotNil(t, msg)
	assert.Nil(t, rest)
	assert.Equal(t, "reserve", msg.Identifier)
	assert.Equal(t, 0, msg.Args.Len())

	_, msg = mustDecode(t, r, DirectionReply, []byte("DELETED\r\n"))
	require.NotNil(t, msg)
	assert.Equal(t, "DELETED", msg.Identifier)
}

func TestDecodePut(t *testing.T) {
	r := mustCreateRegistry(t)

	rest, msg := mustDecode(t, r, DirectionCommand, []byte("put 0 0 60 2\r\nab\r\n"))
	require.NotNil(t, msg)
	assert.Nil(t, rest)
	assert.Equal(t, "put", msg.Identifier)
	assert.Equal(t, map[string]any{
		"pri":   int64(0),
		"delay": int64(0),
		"ttr":   int64(60),
		"bytes": int64(2),
		"data":  []byte("ab"),
	}, msg.Args.Map())
}

func TestDecodeBodyContainingCRLF(t *testing.T) {
	r := mustCreateRegistry(t)

	rest, msg := mustDecode(t, r, DirectionCommand, []byte("put 0 0 60 10\r\nyolo\r\nyolo\r\nreserve\r\n"))
	require.NotNil(t, msg)
	data, ok := msg.Args.Bytes("data")
	require.True(t, ok)
	assert.Equal(t, []byte("yolo\r\nyolo"), data)
	assert.Equal(t, []byte("reserve\r\n"), rest)

	rest, msg = mustDecode(t, r, DirectionReply, []byte("RESERVED 5 0\r\n\r\n"))
	require.NotNil(t, msg)
	assert.Nil(t, rest)
	data, _ = msg.Args.Bytes("data")
	assert.Empty(t, data)
}

func TestDecodeOneMessagePerCall(t *testing.T) {
	r := mustCreateRegistry(t)
	buf := []byte("use emails\r\nput 1 2 3 4\r\nbody\r\nreserve\r\nwatch x\r\n")

	var identifiers []string
	for len(buf) > 0 {
		rest, msg := mustDecode(t, r, DirectionCommand, buf)
		require.NotNil(t, msg)
		identifiers = append(identifiers, msg.Identifier)
		buf = rest
	}
	assert.Equal(t, []string{"use", "put", "reserve", "watch"}, identifiers)
}

func TestDecodeNeedsMoreData(t *testing.T) {
	r := mustCreateRegistry(t)

	inputs := []string{
		"",
		"r",
		"re",
		"reserve",
		"reserve\r",
		"put 0 0 60 2\r\n",
		"put 0 0 60 2\r\na",
		"put 0 0 60 2\r\nab",
		"put 0 0 60 2\r\nab\r",
	}
	for _, input := range inputs {
		buf := []byte(input)
		rest, msg, err := r.Decode(DirectionCommand, buf)
		assert.NoError(t, err, "%q", input)
		assert.Nil(t, msg, "%q", input)
		assert.Equal(t, buf, rest, "%q", input)
	}
}

func TestDecodeFragmented(t *testing.T) {
	r := mustCreateRegistry(t)

	tests := []struct {
		dir   Direction
		input string
	}{
		{DirectionCommand, "put 0 0 60 10\r\nyolo\r\nyolo\r\n"},
		{DirectionCommand, "pause-tube emails 30\r\n"},
		{DirectionReply, "RESERVED 42 5\r\nhello\r\n"},
		{DirectionReply, "KICKED\r\n"},
	}

	for _, test := range tests {
		full := []byte(test.input)
		_, want := mustDecode(t, r, test.dir, full)
		require.NotNil(t, want)

		for i := 0; i < len(full); i++ {
			prefix := full[:i]
			rest, msg, err := r.Decode(test.dir, prefix)
			require.NoError(t, err, "%q split at %d", test.input, i)
			require.Nil(t, msg, "%q split at %d", test.input, i)
			require.Equal(t, prefix, rest)

			rest, msg, err = r.Decode(test.dir, append(append([]byte(nil), prefix...), full[i:]...))
			require.NoError(t, err)
			require.Equal(t, want, msg, "%q split at %d", test.input, i)
			require.Nil(t, rest)
		}
	}
}

func TestDecodeArityOptional(t *testing.T) {
	r := mustCreateRegistry(t)

	_, msg := mustDecode(t, r, DirectionReply, []byte("KICKED\r\n"))
	require.NotNil(t, msg)
	assert.Equal(t, "KICKED", msg.Identifier)
	assert.Equal(t, 0, msg.Args.Len())

	_, msg = mustDecode(t, r, DirectionReply, []byte("KICKED 3\r\n"))
	require.NotNil(t, msg)
	count, ok := msg.Args.Int("count")
	require.True(t, ok)
	assert.Equal(t, int64(3), count)

	_, msg = mustDecode(t, r, DirectionReply, []byte("BURIED 12\r\n"))
	require.NotNil(t, msg)
	id, _ := msg.Args.Int("id")
	assert.Equal(t, int64(12), id)
}

func TestDecodeUnrecognized(t *testing.T) {
	r := mustCreateRegistry(t)

	rest, msg := mustDecode(t, r, DirectionReply, []byte("UNKNOWN_ERROR\r\nDELETED\r\n"))
	require.NotNil(t, msg)
	assert.True(t, msg.Unrecognized)
	assert.Equal(t, "UNKNOWN_ERROR", msg.Identifier)
	assert.Equal(t, 0, msg.Args.Len())
	assert.Equal(t, []byte("DELETED\r\n"), rest)

	_, msg = mustDecode(t, r, DirectionCommand, []byte("frobnicate 1 2\r\n"))
	require.NotNil(t, msg)
	assert.True(t, msg.Unrecognized)
	assert.Equal(t, "frobnicate 1 2", msg.Identifier)

	_, msg = mustDecode(t, r, DirectionCommand, []byte("INSERTED 5\r\n"))
	require.NotNil(t, msg)
	assert.True(t, msg.Unrecognized, "replies are not commands")
}

func TestDecodeArgumentErrors(t *testing.T) {
	r := mustCreateRegistry(t)

	tests := []struct {
		name   string
		input  string
		param  string
		target error
	}{
		{"malformed integer", "delete abc\r\n", "id", ErrMalformedInteger},
		{"too many", "delete 1 2\r\n", "", ErrArgumentCountMismatch},
		{"too few", "release 1 2\r\n", "", ErrArgumentCountMismatch},
		{"unexpected arguments", "reserve now\r\n", "", ErrArgumentCountMismatch},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, msg, err := r.Decode(DirectionCommand, []byte(test.input+"stats\r\n"))
			assert.Nil(t, msg)

			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr), "%v", err)
			assert.Equal(t, test.param, argErr.Param)
			assert.True(t, errors.Is(err, test.target))
			assert.Equal(t, []byte("stats\r\n"), rest, "the message is consumed")
		})
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	r := mustCreateRegistry(t)

	tests := []struct {
		name   string
		dir    Direction
		input  string
		target error
	}{
		{"malformed length", DirectionCommand, "put 0 0 60 x\r\nab\r\n", ErrMalformedLength},
		{"negative length", DirectionCommand, "put 0 0 60 -1\r\nab\r\n", ErrMalformedLength},
		{"length one below int max", DirectionCommand, "put 0 0 60 9223372036854775806\r\nab\r\n", ErrMalformedLength},
		{"length of int max", DirectionCommand, "put 0 0 60 9223372036854775807\r\nab\r\n", ErrMalformedLength},
		{"length beyond int max", DirectionCommand, "put 0 0 60 9223372036854775808\r\nab\r\n", ErrMalformedLength},
		{"reply length of int max", DirectionReply, "OK 9223372036854775807\r\nab\r\n", ErrMalformedLength},
		{"body longer than declared", DirectionCommand, "put 0 0 60 2\r\nabc\r\n", ErrMissingTerminator},
		{"header count", DirectionCommand, "put 0 0 2\r\nab\r\n", ErrArgumentCountMismatch},
		{"reply body", DirectionReply, "OK 3\r\nabcd\r\n", ErrMissingTerminator},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := []byte(test.input)
			rest, msg, err := r.Decode(test.dir, buf)
			assert.Nil(t, msg)

			var frameErr *FrameError
			require.True(t, errors.As(err, &frameErr), "%v", err)
			assert.True(t, errors.Is(err, test.target))
			assert.Equal(t, buf, rest, "nothing is consumed")
		})
	}
}

func TestDecodeTextBody(t *testing.T) {
	r := mustCreateRegistry(t)
	require.NoError(t, r.AddCommand("move <id>\r\n<tube> <delay>\r\n"))

	rest, msg, err := r.Decode(DirectionCommand, []byte("move 7\r\nurgent"))
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, []byte("move 7\r\nurgent"), rest)

	rest, msg = mustDecode(t, r, DirectionCommand, []byte("move 7\r\nurgent 30\r\n"))
	require.NotNil(t, msg)
	assert.Nil(t, rest)
	assert.Equal(t, map[string]any{"id": int64(7), "tube": "urgent", "delay": int64(30)}, msg.Args.Map())

	_, _, err = r.Decode(DirectionCommand, []byte("move 7\r\nurgent\r\n"))
	var frameErr *FrameError
	assert.True(t, errors.As(err, &frameErr))
}

func TestDecodeExplicitLength(t *testing.T) {
	r := mustCreateRegistry(t)
	r.AddType("key", Integer)
	require.NoError(t, r.AddCommand("set <bytes> <key>\r\n<data:bytes>\r\n"))

	_, msg := mustDecode(t, r, DirectionCommand, []byte("set 3 99\r\nabc\r\n"))
	require.NotNil(t, msg)
	assert.Equal(t, map[string]any{"bytes": int64(3), "key": int64(99), "data": []byte("abc")}, msg.Args.Map())
}

func TestDecodedValuesDoNotAliasInput(t *testing.T) {
	r := mustCreateRegistry(t)
	buf := []byte("put 0 0 60 2\r\nab\r\n")

	_, msg := mustDecode(t, r, DirectionCommand, buf)
	require.NotNil(t, msg)
	for i := range buf {
		buf[i] = 'x'
	}
	data, _ := msg.Args.Bytes("data")
	assert.Equal(t, []byte("ab"), data)
}

func TestDecodeLargeLengthWaitsForBody(t *testing.T) {
	r := mustCreateRegistry(t)

	header := []byte("put 0 0 60 1048576\r\n")
	rest, msg, err := r.Decode(DirectionCommand, header)
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, header, rest)

	buf := append(append([]byte(nil), header...), bytes.Repeat([]byte("x"), 1048575)...)
	rest, msg, err = r.Decode(DirectionCommand, buf)
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, buf, rest)

	buf = append(buf, "x\r\nreserve\r\n"...)
	rest, msg = mustDecode(t, r, DirectionCommand, buf)
	require.NotNil(t, msg)
	data, _ := msg.Args.Bytes("data")
	assert.Len(t, data, 1048576)
	assert.Equal(t, []byte("reserve\r\n"), rest)

	r.AddType("size", Integer)
	require.NoError(t, r.AddCommand("blob <size>\r\n<data>\r\n"))
	input := []byte("blob 9223372036854775806\r\nab\r\n")
	assert.NotPanics(t, func() {
		rest, msg, err = r.Decode(DirectionCommand, input)
	})
	var frameErr *FrameError
	require.True(t, errors.As(err, &frameErr))
	assert.Nil(t, msg)
	assert.Equal(t, input, rest)
}

func TestDecodeShortestHeader(t *testing.T) {
	r := mustCreateRegistry(t)

	rest, msg := mustDecode(t, r, DirectionReply, []byte("X\r\nDELETED\r\n"))
	require.NotNil(t, msg)
	assert.True(t, msg.Unrecognized)
	assert.Equal(t, "X", msg.Identifier)
	assert.Equal(t, []byte("DELETED\r\n"), rest)
}
