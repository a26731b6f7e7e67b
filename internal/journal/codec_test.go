package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Query string
	Limit int
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	in := samplePayload{Query: "go stream", Limit: 20}

	data, err := EncodeValue(in)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	out, err := DecodeValue[samplePayload](data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestCodec_NilEncodesToNothing(t *testing.T) {
	t.Parallel()

	data, err := EncodeValue(nil)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestCodec_EmptyDecodesToZero(t *testing.T) {
	t.Parallel()

	out, err := DecodeValue[samplePayload](nil)
	require.NoError(t, err)
	require.Zero(t, out)
}

func TestCodec_GarbageFailsToDecode(t *testing.T) {
	t.Parallel()

	_, err := DecodeValue[samplePayload]([]byte{0xc1})
	require.Error(t, err)
}
