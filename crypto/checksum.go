package crypto

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/ripemd160"
)

const checksumSize = 4

// ripemd160checksum is the first 4 bytes of ripemd160(data || suffix).
func ripemd160checksum(data []byte, suffix string) []byte {
	h := ripemd160.New()
	_, _ = h.Write(data)
	_, _ = h.Write([]byte(suffix))
	return h.Sum(nil)[:checksumSize]
}

func appendChecksum(data []byte, suffix string) []byte {
	out := make([]byte, 0, len(data)+checksumSize)
	out = append(out, data...)
	return append(out, ripemd160checksum(data, suffix)...)
}

// splitChecksum verifies and strips the trailing checksum.
func splitChecksum(buf []byte, suffix string) ([]byte, error) {
	if len(buf) <= checksumSize {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrChecksum, len(buf))
	}
	content := buf[:len(buf)-checksumSize]
	checksum := buf[len(buf)-checksumSize:]
	verify := ripemd160checksum(content, suffix)
	if !bytes.Equal(verify, checksum) {
		return nil, fmt.Errorf("%w: found %x expected %x", ErrChecksum, checksum, verify)
	}
	return content, nil
}
