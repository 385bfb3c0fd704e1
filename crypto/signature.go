package crypto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
)

const (
	SignaturePrefix   = "SIG_"
	SignatureK1Prefix = "SIG_K1_"

	// SignatureSize is the [v | r | s] compact layout.
	SignatureSize = 65
)

type CurveID uint8

const (
	CurveK1 CurveID = iota
	CurveR1
)

// Signature represents a signature for some hash
type Signature struct {
	Curve   CurveID
	Content []byte // the compact signature as bytes, v | r | s
}

// EncodeSignature turns a type-tagged binary signature into its text form.
// Only K1 signatures have an encoding.
func EncodeSignature(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidSignature)
	}
	switch CurveID(raw[0]) {
	case CurveK1:
		data := raw[1:]
		if len(data) < SignatureSize {
			return "", fmt.Errorf("%w: want %d bytes, have %d", ErrInvalidSignature, SignatureSize, len(data))
		}
		data = data[:SignatureSize]
		return SignatureK1Prefix + base58.Encode(appendChecksum(data, "K1")), nil
	case CurveR1:
		return "", ErrNotImplemented
	default:
		return "", fmt.Errorf("%w: type %d", ErrInvalidSignature, raw[0])
	}
}

// NewSignature parses the "SIG_K1_" text form, checking its checksum.
func NewSignature(fromText string) (Signature, error) {
	if !strings.HasPrefix(fromText, SignaturePrefix) {
		return Signature{}, fmt.Errorf("%w: signature should start with %s", ErrInvalidSignature, SignaturePrefix)
	}
	if !strings.HasPrefix(fromText, SignatureK1Prefix) {
		return Signature{}, ErrNotImplemented
	}

	content, err := splitChecksum(base58.Decode(fromText[len(SignatureK1Prefix):]), "K1")
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	if len(content) != SignatureSize {
		return Signature{}, fmt.Errorf("%w: want %d bytes, have %d", ErrInvalidSignature, SignatureSize, len(content))
	}

	return Signature{Curve: CurveK1, Content: content}, nil
}

// Bytes returns the type byte followed by the compact signature.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, 1+len(s.Content))
	out = append(out, byte(s.Curve))
	return append(out, s.Content...)
}

func (s Signature) Text() (string, error) {
	return EncodeSignature(s.Bytes())
}

func (s Signature) String() string {
	text, err := s.Text()
	if err != nil {
		return ""
	}
	return text
}

// Verify checks the signature against the pubKey. `hash` is a sha256
// hash of the payload to verify.
func (s Signature) Verify(hash []byte, pubKey PublicKey) bool {
	recovered, err := s.PublicKey(hash)
	if err != nil {
		return false
	}
	key, err := pubKey.Key()
	if err != nil {
		return false
	}
	recoveredKey, err := recovered.Key()
	if err != nil {
		return false
	}
	return recoveredKey.IsEqual(key)
}

// PublicKey retrieves the public key, but requires the
// payload.. that's the way to validate the signature. Use Verify() if
// you only want to validate.
func (s Signature) PublicKey(hash []byte) (out PublicKey, err error) {
	if s.Curve != CurveK1 {
		return out, ErrNotImplemented
	}
	recoveredKey, _, err := btcec.RecoverCompact(btcec.S256(), s.Content, hash)
	if err != nil {
		return out, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	return PublicKey{
		Content: recoveredKey.SerializeCompressed(),
	}, nil
}

func (s Signature) MarshalJSON() ([]byte, error) {
	text, err := s.Text()
	if err != nil {
		return nil, err
	}
	return json.Marshal(text)
}

func (s *Signature) UnmarshalJSON(data []byte) (err error) {
	var text string
	err = json.Unmarshal(data, &text)
	if err != nil {
		return
	}

	*s, err = NewSignature(text)

	return
}
