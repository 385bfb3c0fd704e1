package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// MaxCanonicalAttempts bounds the nonce search in Sign.
const MaxCanonicalAttempts = 1000

// Sign signs a 32 bytes SHA256 hash. Nonces are derived deterministically
// from the hash, the key and an attempt counter; attempts whose signature
// is not canonical are discarded and the counter is incremented.
func (p *PrivateKey) Sign(hash []byte) (out Signature, err error) {
	if len(hash) != sha256.Size {
		return out, fmt.Errorf("hash should be 32 bytes")
	}

	for nonce := uint64(0); nonce < MaxCanonicalAttempts; nonce++ {
		compact, ok := p.signRaw(hash, nonce)
		if !ok || !isCanonical(compact) {
			continue
		}
		return Signature{Curve: CurveK1, Content: compact}, nil
	}

	return out, fmt.Errorf("%w after %d attempts", ErrCanonicalFormUnreachable, MaxCanonicalAttempts)
}

// signRaw produces [v | r | s] for one nonce. It reports false when the
// nonce yields a degenerate k, r or s.
func (p *PrivateKey) signRaw(hash []byte, nonce uint64) ([]byte, bool) {
	curve := btcec.S256()
	n := curve.N

	k := deterministicNonce(hash, p.privKey.Serialize(), nonce)
	k.Mod(k, n)
	if k.Sign() == 0 {
		return nil, false
	}

	rx, ry := curve.ScalarBaseMult(k.Bytes())
	r := new(big.Int).Mod(rx, n)
	if r.Sign() == 0 {
		return nil, false
	}

	z := new(big.Int).SetBytes(hash)
	s := new(big.Int).Mul(r, p.privKey.D)
	s.Add(s, z)
	s.Mul(s, new(big.Int).ModInverse(k, n))
	s.Mod(s, n)
	if s.Sign() == 0 {
		return nil, false
	}

	parity := byte(ry.Bit(0))
	if new(big.Int).Lsh(s, 1).Cmp(n) >= 0 {
		s.Sub(n, s)
		parity ^= 1
	}

	v := 27 + parity
	if p.compressed {
		v += 4
	}

	out := make([]byte, SignatureSize)
	out[0] = v
	r.FillBytes(out[1:33])
	s.FillBytes(out[33:65])
	return out, true
}

// deterministicNonce is the RFC6979 HMAC-SHA256 construction where the
// message input is int(hash)+nonce, so every attempt gets a distinct k.
func deterministicNonce(hash []byte, priv []byte, nonce uint64) *big.Int {
	v := make([]byte, sha256.Size)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, sha256.Size)

	z := new(big.Int).SetBytes(hash)
	z.Add(z, new(big.Int).SetUint64(nonce))
	msg := z.Bytes()
	if len(msg) < sha256.Size {
		msg = append(make([]byte, sha256.Size-len(msg)), msg...)
	}

	k = hmacSHA256(k, v, []byte{0x00}, priv, msg)
	v = hmacSHA256(k, v)
	k = hmacSHA256(k, v, []byte{0x01}, priv, msg)
	v = hmacSHA256(k, v)

	return new(big.Int).SetBytes(hmacSHA256(k, v))
}

func hmacSHA256(key []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, part := range parts {
		_, _ = mac.Write(part)
	}
	return mac.Sum(nil)
}

// isCanonical rejects r or s with the high bit set, or with a leading zero
// byte that is not needed to clear the sign bit of the next byte.
func isCanonical(c []byte) bool {
	return c[1]&0x80 == 0 &&
		!(c[1] == 0 && c[2]&0x80 == 0) &&
		c[33]&0x80 == 0 &&
		!(c[33] == 0 && c[34]&0x80 == 0)
}
