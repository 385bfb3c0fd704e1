package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	devWIF       = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"
	devK1        = "PVT_K1_2bfGi9rYsXQSXXTvJbDAPhHLQUojjaNLomdm3cEJ1XTzMqUt3V"
	devHex       = "d2653ff7cbb2d8ff129ac27ef5781ce68b2558c41a74af1f2ddca635cbeef07d"
	devPublicKey = "EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"
	devPubK1     = "PUB_K1_6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5BoDq63"
)

func TestNewPrivateKey(t *testing.T) {
	t.Parallel()

	t.Run("wif", func(t *testing.T) {
		t.Parallel()

		key, err := NewPrivateKey(devWIF)
		require.NoError(t, err)
		assert.False(t, key.Compressed())
		assert.Equal(t, devWIF, key.String())
		assert.Equal(t, devPublicKey, key.PublicKey().String())
		assert.Equal(t, devPubK1, key.PublicKey().K1String())
		assert.Equal(t, devK1, key.K1String())
	})

	t.Run("prefixed wif", func(t *testing.T) {
		t.Parallel()

		key, err := NewPrivateKey(PrivateKeyPrefix + devWIF)
		require.NoError(t, err)
		assert.Equal(t, devPublicKey, key.PublicKey().String())
	})

	t.Run("k1", func(t *testing.T) {
		t.Parallel()

		key, err := NewPrivateKey(devK1)
		require.NoError(t, err)
		assert.True(t, key.Compressed())
		assert.Equal(t, devPublicKey, key.PublicKey().String())
	})

	t.Run("hex", func(t *testing.T) {
		t.Parallel()

		key, err := NewPrivateKey(devHex)
		require.NoError(t, err)
		assert.False(t, key.Compressed())
		assert.Equal(t, devWIF, key.String())
	})

	t.Run("handles invalid material", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"",
			"not a key",
			devWIF[:len(devWIF)-1] + "4",
			"PVT_K1_" + devK1[len("PVT_K1_"):len(devK1)-1] + "1",
			"0000000000000000000000000000000000000000000000000000000000000000",
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		} {
			_, err := NewPrivateKey(text)
			assert.ErrorIs(t, err, ErrInvalidPrivateKey, text)
		}
	})
}

func TestNewDeterministicPrivateKey(t *testing.T) {
	t.Parallel()

	seed := bytes.Repeat([]byte{0x42}, 32)
	first, err := NewDeterministicPrivateKey(bytes.NewReader(seed))
	require.NoError(t, err)
	second, err := NewDeterministicPrivateKey(bytes.NewReader(seed))
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())

	_, err = NewDeterministicPrivateKey(bytes.NewReader(seed[:8]))
	assert.Error(t, err)
}

func TestPrivateKey_JSON(t *testing.T) {
	t.Parallel()

	key, err := NewPrivateKey(devWIF)
	require.NoError(t, err)

	data, err := key.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"`+devWIF+`"`, string(data))

	var got PrivateKey
	require.NoError(t, got.UnmarshalJSON(data))
	assert.Equal(t, devWIF, got.String())
}

func TestNewPublicKey(t *testing.T) {
	t.Parallel()

	legacy, err := NewPublicKey(devPublicKey)
	require.NoError(t, err)
	k1, err := NewPublicKey(devPubK1)
	require.NoError(t, err)
	assert.Equal(t, legacy.Content, k1.Content)
	assert.Len(t, legacy.Content, 33)

	_, err = legacy.Key()
	require.NoError(t, err)

	_, err = NewPublicKey("EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CW")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = NewPublicKey("PUB_R1_6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5BoDq63")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}
