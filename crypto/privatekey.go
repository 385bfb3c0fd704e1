package crypto

import (
	cryptorand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
)

const (
	PrivateKeyPrefix   = "PVT_"
	PrivateKeyK1Prefix = "PVT_K1_"
)

func NewRandomPrivateKey() (*PrivateKey, error) {
	return newRandomPrivateKey(cryptorand.Reader)
}

func NewDeterministicPrivateKey(randSource io.Reader) (*PrivateKey, error) {
	return newRandomPrivateKey(randSource)
}

func newRandomPrivateKey(randSource io.Reader) (*PrivateKey, error) {
	rawPrivKey := make([]byte, 32)
	written, err := io.ReadFull(randSource, rawPrivKey)
	if err != nil {
		return nil, fmt.Errorf("error feeding crypto-rand numbers to seed ephemeral private key: %w", err)
	}
	if written != 32 {
		return nil, fmt.Errorf("couldn't write 32 bytes of randomness to seed ephemeral private key")
	}

	h := sha256.Sum256(rawPrivKey)
	privKey, _ := btcec.PrivKeyFromBytes(btcec.S256(), h[:])

	return &PrivateKey{privKey: privKey}, nil
}

// NewPrivateKey decodes a WIF key (optionally "PVT_" prefixed), a
// "PVT_K1_" key or 64 hex characters.
func NewPrivateKey(text string) (*PrivateKey, error) {
	switch {
	case strings.HasPrefix(text, PrivateKeyK1Prefix):
		content, err := splitChecksum(base58.Decode(text[len(PrivateKeyK1Prefix):]), "K1")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPrivateKey, err)
		}
		return privateKeyFromBytes(content, true)

	case len(text) == 64 && isHex(text):
		raw, _ := hex.DecodeString(text)
		return privateKeyFromBytes(raw, false)
	}

	privKeyMaterial := strings.TrimPrefix(text, PrivateKeyPrefix)
	wifObj, err := btcutil.DecodeWIF(privKeyMaterial)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrivateKey, err)
	}

	return &PrivateKey{privKey: wifObj.PrivKey, compressed: wifObj.CompressPubKey}, nil
}

func privateKeyFromBytes(raw []byte, compressed bool) (*PrivateKey, error) {
	if len(raw) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrInvalidPrivateKey, btcec.PrivKeyBytesLen, len(raw))
	}
	d := new(big.Int).SetBytes(raw)
	if d.Sign() == 0 || d.Cmp(btcec.S256().N) >= 0 {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidPrivateKey)
	}
	privKey, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	return &PrivateKey{privKey: privKey, compressed: compressed}, nil
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

type PrivateKey struct {
	privKey    *btcec.PrivateKey
	compressed bool
}

func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey{Content: p.privKey.PubKey().SerializeCompressed()}
}

// Compressed reports whether signatures carry the compressed-key flag (+4
// on the recovery byte).
func (p *PrivateKey) Compressed() bool {
	return p.compressed
}

func (p *PrivateKey) String() string {
	wif, _ := btcutil.NewWIF(p.privKey, &chaincfg.Params{PrivateKeyID: '\x80'}, p.compressed) // no error possible
	return wif.String()
}

func (p *PrivateKey) K1String() string {
	return PrivateKeyK1Prefix + base58.Encode(appendChecksum(p.privKey.Serialize(), "K1"))
}

func (p *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PrivateKey) UnmarshalJSON(v []byte) (err error) {
	var s string
	if err = json.Unmarshal(v, &s); err != nil {
		return
	}

	newPrivKey, err := NewPrivateKey(s)
	if err != nil {
		return
	}

	*p = *newPrivKey

	return
}
