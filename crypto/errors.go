package crypto

import "errors"

var (
	ErrInvalidPrivateKey        = errors.New("invalid private key")
	ErrInvalidPublicKey         = errors.New("invalid public key")
	ErrInvalidSignature         = errors.New("invalid binary signature")
	ErrNotImplemented           = errors.New("signature type not implemented")
	ErrCanonicalFormUnreachable = errors.New("no canonical signature found")
	ErrChecksum                 = errors.New("checksum mismatch")
)
