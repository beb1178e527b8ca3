package secret

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "8f3a2b1c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8"

func newTestCodec(t *testing.T) *Codec {
	c, err := NewCodec(testKey)
	require.NoError(t, err)
	return c
}

func TestNewCodecBadKey(t *testing.T) {
	_, err := NewCodec("not-hex")
	assert.Error(t, err)

	_, err = NewCodec("abcd")
	assert.Error(t, err)
}

func TestSealOpenRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	sealed, err := c.Seal("secret")
	require.NoError(t, err)

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "secret", plain)
}

func TestSealRandomized(t *testing.T) {
	c := newTestCodec(t)

	a, err := c.Seal("JSESSIONID=abc; 39ce7=def")
	require.NoError(t, err)
	b, err := c.Seal("JSESSIONID=abc; 39ce7=def")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpenCorruptByte(t *testing.T) {
	c := newTestCodec(t)

	sealed, err := c.Seal("secret")
	require.NoError(t, err)

	raw, err := hex.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	_, err = c.Open(hex.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrCorruptSecret)
}

func TestOpenMalformed(t *testing.T) {
	c := newTestCodec(t)

	for _, input := range []string{
		"",
		"zz",
		"abcd",
		strings.Repeat("00", 10), // 比 nonce 还短
	} {
		_, err := c.Open(input)
		assert.ErrorIs(t, err, ErrCorruptSecret, "input %q", input)
	}
}
