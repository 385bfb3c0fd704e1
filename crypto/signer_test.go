package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestPrivateKey_Sign(t *testing.T) {
	t.Parallel()

	key, err := NewPrivateKey(devWIF)
	require.NoError(t, err)
	compressed, err := NewPrivateKey(devK1)
	require.NoError(t, err)

	vectors := []struct {
		name   string
		key    *PrivateKey
		digest string
		want   string
	}{
		{
			name:   "first nonce is canonical",
			key:    key,
			digest: "5da8487b9e406ab69346bc4d3420ee8c37a02549e31d47a084a9e76dae5909e6",
			want:   "SIG_K1_HR9ZM85HzfMeetzwk8XzYBmosneJFH3s9SX2LbtnyikD7q51radL1TgRajyHwneR6iJaGQZYdCw1ziHnJHjf1AAvRcuohS",
		},
		{
			name:   "compressed key sets the flag",
			key:    compressed,
			digest: "5da8487b9e406ab69346bc4d3420ee8c37a02549e31d47a084a9e76dae5909e6",
			want:   "SIG_K1_Kj7itojSAD8vv5UcUdPavRbjnqBZTNv3eWLy2E8XuvGHuMkWqrW1Z6Gwywv8ocM1aSroNg5imdY6dLyVVKMx5HpHidTGqz",
		},
		{
			name:   "three rejected nonces",
			key:    key,
			digest: "ca358758f6d27e6cf45272937977a748fd88391db679ceda7dc7bf1f005ee879",
			want:   "SIG_K1_GkbHxi3yk6b6bjUqMnHSUAtTEdWDSubz8oCj2pG7LujqXwhCcbMZy9CW4bUcimgm8LojPYXTErrUbgtKNBQXx1KJcp7EYr",
		},
		{
			name:   "nine rejected nonces",
			key:    key,
			digest: "36a9e7f1c95b82ffb99743e0c5c4ce95d83c9a430aac59f84ef3cbfab6145068",
			want:   "SIG_K1_GkXvXreJDLp7eEmsfcayckmJ6y5PXqCbh6yPjrrtNLRiasqv2DqH9k6KZERPt88uY75DvUt9bCwyXtj1sMFn3roR3NAU1A",
		},
	}

	for _, v := range vectors {
		v := v
		t.Run(v.name, func(t *testing.T) {
			t.Parallel()

			digest := mustHex(t, v.digest)
			sig, err := v.key.Sign(digest)
			require.NoError(t, err)

			text, err := sig.Text()
			require.NoError(t, err)
			assert.Equal(t, v.want, text)
			assert.True(t, sig.Verify(digest, v.key.PublicKey()))
		})
	}
}

func TestPrivateKey_SignCanonical(t *testing.T) {
	t.Parallel()

	key, err := NewRandomPrivateKey()
	require.NoError(t, err)

	for i := 0; i < 64; i++ {
		digest := sha256.Sum256([]byte{byte(i)})
		sig, err := key.Sign(digest[:])
		require.NoError(t, err)
		require.Len(t, sig.Content, SignatureSize)

		c := sig.Content
		assert.True(t, isCanonical(c))
		assert.Zero(t, c[1]&0x80)
		assert.False(t, c[1] == 0 && c[2]&0x80 == 0)
		assert.Zero(t, c[33]&0x80)
		assert.False(t, c[33] == 0 && c[34]&0x80 == 0)
		assert.Contains(t, []byte{27, 28}, c[0])

		recovered, compressed, err := btcec.RecoverCompact(btcec.S256(), c, digest[:])
		require.NoError(t, err)
		assert.False(t, compressed)
		assert.Equal(t, key.PublicKey().Content, recovered.SerializeCompressed())
	}
}

func TestPrivateKey_SignDeterministic(t *testing.T) {
	t.Parallel()

	key, err := NewPrivateKey(devWIF)
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("deterministic"))

	first, err := key.Sign(digest[:])
	require.NoError(t, err)
	second, err := key.Sign(digest[:])
	require.NoError(t, err)
	assert.Equal(t, first.Content, second.Content)

	for nonce := uint64(0); nonce < 4; nonce++ {
		a, okA := key.signRaw(digest[:], nonce)
		b, okB := key.signRaw(digest[:], nonce)
		assert.Equal(t, okA, okB)
		assert.Equal(t, a, b)
	}

	a, _ := key.signRaw(digest[:], 0)
	b, _ := key.signRaw(digest[:], 1)
	assert.NotEqual(t, a, b)
}

func TestPrivateKey_SignInvalidHash(t *testing.T) {
	t.Parallel()

	key, err := NewPrivateKey(devWIF)
	require.NoError(t, err)

	_, err = key.Sign([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestIsCanonical(t *testing.T) {
	t.Parallel()

	sig := func(r1, r2, s1, s2 byte) []byte {
		c := make([]byte, SignatureSize)
		c[0] = 27
		c[1], c[2] = r1, r2
		c[33], c[34] = s1, s2
		return c
	}

	assert.True(t, isCanonical(sig(0x7f, 0x00, 0x01, 0x00)))
	assert.True(t, isCanonical(sig(0x00, 0x80, 0x00, 0x80)))
	assert.False(t, isCanonical(sig(0x80, 0x00, 0x01, 0x00)))
	assert.False(t, isCanonical(sig(0x00, 0x7f, 0x01, 0x00)))
	assert.False(t, isCanonical(sig(0x01, 0x00, 0x80, 0x00)))
	assert.False(t, isCanonical(sig(0x01, 0x00, 0x00, 0x01)))
}
