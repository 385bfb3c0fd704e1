package crypto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
)

const (
	PublicKeyPrefix   = "EOS"
	PublicKeyK1Prefix = "PUB_K1_"
)

// PublicKey holds a 33 byte compressed secp256k1 point.
type PublicKey struct {
	Content []byte
}

func NewPublicKey(text string) (PublicKey, error) {
	var content []byte
	var err error
	switch {
	case strings.HasPrefix(text, PublicKeyK1Prefix):
		content, err = splitChecksum(base58.Decode(text[len(PublicKeyK1Prefix):]), "K1")
	case strings.HasPrefix(text, PublicKeyPrefix):
		content, err = splitChecksum(base58.Decode(text[len(PublicKeyPrefix):]), "")
	default:
		return PublicKey{}, fmt.Errorf("%w: unknown prefix in %q", ErrInvalidPublicKey, text)
	}
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}
	if len(content) != btcec.PubKeyBytesLenCompressed {
		return PublicKey{}, fmt.Errorf("%w: want %d bytes, have %d", ErrInvalidPublicKey, btcec.PubKeyBytesLenCompressed, len(content))
	}
	return PublicKey{Content: content}, nil
}

func (p PublicKey) Key() (*btcec.PublicKey, error) {
	key, err := btcec.ParsePubKey(p.Content, btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}
	return key, nil
}

// String returns the legacy "EOS..." form.
func (p PublicKey) String() string {
	return PublicKeyPrefix + base58.Encode(appendChecksum(p.Content, ""))
}

func (p PublicKey) K1String() string {
	return PublicKeyK1Prefix + base58.Encode(appendChecksum(p.Content, "K1"))
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PublicKey) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return
	}
	*p, err = NewPublicKey(s)
	return
}
