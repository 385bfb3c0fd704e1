package chain

import (
	"encoding/hex"
	"encoding/json"
)

type Name string
type AccountName Name
type PermissionName Name
type ActionName Name

type Varuint32 uint32

type SHA256Type [32]byte

type CompressionType uint8

const (
	None CompressionType = iota
	Zlib
)

func (c CompressionType) String() string {
	switch c {
	case Zlib:
		return "zlib"
	default:
		return "none"
	}
}

// ParseCompression accepts the names used by the push_transaction API.
func ParseCompression(s string) (CompressionType, error) {
	switch s {
	case "", "none", "0", "false":
		return None, nil
	case "zlib", "1", "true":
		return Zlib, nil
	}
	return None, &CodecError{Field: "compression", Value: s, Err: ErrUnknownCompression}
}

const (
	ACTIVE = PermissionName("active")
	OWNER  = PermissionName("owner")
)

const DefaultExpirationDelaySec = 300

var TypeSize = struct {
	Byte        int
	Int8        int
	UInt8       int
	UInt16      int
	Int16       int
	UInt32      int
	Int32       int
	UInt64      int
	Int64       int
	SHA256Bytes int
	Name        int
	TimePoint   int
	MaxVarint   int
}{
	Byte:        1,
	Int8:        1,
	UInt8:       1,
	UInt16:      2,
	Int16:       2,
	UInt32:      4,
	Int32:       4,
	UInt64:      8,
	Int64:       8,
	SHA256Bytes: 32,
	Name:        8,
	TimePoint:   4,
	MaxVarint:   9,
}

// HexBytes marshals to JSON as a hex string.
type HexBytes []byte

func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return &CodecError{Field: "hex", Value: s, Err: ErrInvalidHex}
	}
	*b = out
	return nil
}

func (c CompressionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CompressionType) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		var b bool
		if json.Unmarshal(data, &b) != nil {
			return err
		}
		s = "none"
		if b {
			s = "zlib"
		}
	}
	*c, err = ParseCompression(s)
	return
}
