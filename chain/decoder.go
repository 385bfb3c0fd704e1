package chain

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Unpacker is the decoding side of Packer.
type Unpacker interface {
	Unpack(d *Decoder) error
}

// Decoder implements the EOSIO unpacking, reading from the front of data.
type Decoder struct {
	data []byte
	pos  int

	// StripDots removes the trailing padding dots from decoded names.
	StripDots bool
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		data: data,
	}
}

func (d *Decoder) Decode(v interface{}) (err error) {
	switch cv := v.(type) {
	case Unpacker:
		return cv.Unpack(d)
	case *uint8:
		*cv, err = d.ReadUint8()
	case *int8:
		*cv, err = d.ReadInt8()
	case *uint16:
		*cv, err = d.ReadUint16()
	case *int16:
		*cv, err = d.ReadInt16()
	case *uint32:
		*cv, err = d.ReadUint32()
	case *int32:
		*cv, err = d.ReadInt32()
	case *uint64:
		*cv, err = d.ReadUint64()
	case *int64:
		*cv, err = d.ReadInt64()
	case *bool:
		*cv, err = d.ReadBool()
	case *string:
		*cv, err = d.ReadString()
	case *[]byte:
		*cv, err = d.ReadBytes()
	case *time.Time:
		*cv, err = d.ReadTimePointSec()
	case *SHA256Type:
		*cv, err = d.ReadSHA256()
	default:
		return fmt.Errorf("decode: unsupported type %T", v)
	}
	return
}

func (d *Decoder) remaining() int {
	return len(d.data) - d.pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return d.remaining()
}

func (d *Decoder) ReadUint8() (out uint8, err error) {
	if d.remaining() < TypeSize.UInt8 {
		err = truncated("uint8", TypeSize.UInt8, d.remaining())
		return
	}
	out = d.data[d.pos]
	d.pos++
	return
}

func (d *Decoder) ReadByte() (byte, error) {
	return d.ReadUint8()
}

func (d *Decoder) ReadInt8() (out int8, err error) {
	n, err := d.ReadUint8()
	out = int8(n)
	return
}

func (d *Decoder) ReadBool() (out bool, err error) {
	b, err := d.ReadUint8()
	if err != nil {
		return
	}
	out = b != 0
	return
}

func (d *Decoder) ReadUint16() (out uint16, err error) {
	if d.remaining() < TypeSize.UInt16 {
		err = truncated("uint16", TypeSize.UInt16, d.remaining())
		return
	}
	out = binary.LittleEndian.Uint16(d.data[d.pos:])
	d.pos += TypeSize.UInt16
	return
}

func (d *Decoder) ReadInt16() (out int16, err error) {
	n, err := d.ReadUint16()
	out = int16(n)
	return
}

func (d *Decoder) ReadUint32() (out uint32, err error) {
	if d.remaining() < TypeSize.UInt32 {
		err = truncated("uint32", TypeSize.UInt32, d.remaining())
		return
	}
	out = binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += TypeSize.UInt32
	return
}

func (d *Decoder) ReadInt32() (out int32, err error) {
	n, err := d.ReadUint32()
	out = int32(n)
	return
}

func (d *Decoder) ReadUint64() (out uint64, err error) {
	if d.remaining() < TypeSize.UInt64 {
		err = truncated("uint64", TypeSize.UInt64, d.remaining())
		return
	}
	out = binary.LittleEndian.Uint64(d.data[d.pos:])
	d.pos += TypeSize.UInt64
	return
}

func (d *Decoder) ReadInt64() (out int64, err error) {
	n, err := d.ReadUint64()
	out = int64(n)
	return
}

// ReadVaruint32 fails with ErrInvalidVarint when the encoded value does not
// fit in 32 bits.
func (d *Decoder) ReadVaruint32() (uint32, error) {
	read, v, err := UnpackVaruint32(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	if v > 0xffffffff {
		return 0, &CodecError{Field: "varuint32", Value: fmt.Sprint(v), Err: ErrInvalidVarint}
	}
	d.pos += read
	return uint32(v), nil
}

// ReadRaw returns the next n bytes without interpreting a length prefix.
func (d *Decoder) ReadRaw(n int) (out []byte, err error) {
	if d.remaining() < n {
		err = truncated("raw", n, d.remaining())
		return
	}
	out = d.data[d.pos : d.pos+n]
	d.pos += n
	return
}

func (d *Decoder) ReadBytes() (out []byte, err error) {
	l, err := d.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	if d.remaining() < int(l) {
		return nil, truncated("byte array", int(l), d.remaining())
	}
	out = d.data[d.pos : d.pos+int(l)]
	d.pos += int(l)
	return
}

func (d *Decoder) ReadString() (out string, err error) {
	data, err := d.ReadBytes()
	out = string(data)
	return
}

func (d *Decoder) ReadName() (out Name, err error) {
	n, err := d.ReadUint64()
	if err != nil {
		return
	}
	out = Name(NameToString(n, d.StripDots))
	return
}

func (d *Decoder) ReadTimePointSec() (out time.Time, err error) {
	n, err := d.ReadUint32()
	if err != nil {
		return
	}
	out = time.Unix(int64(n), 0).UTC()
	return
}

func (d *Decoder) ReadSHA256() (out SHA256Type, err error) {
	if d.remaining() < TypeSize.SHA256Bytes {
		err = truncated("sha256", TypeSize.SHA256Bytes, d.remaining())
		return
	}
	copy(out[:], d.data[d.pos:d.pos+TypeSize.SHA256Bytes])
	d.pos += TypeSize.SHA256Bytes
	return
}

// UnpackArray reads a varuint32 count then count items.
func UnpackArray[T any](d *Decoder, unpack func(*Decoder) (T, error)) ([]T, error) {
	l, err := d.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(int(l), d.remaining()))
	for i := 0; i < int(l); i++ {
		item, err := unpack(d)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// UnpackVaruint32 returns the number of bytes consumed and the decoded value.
// Scanning stops after the 9th byte even when its continuation bit is set.
func UnpackVaruint32(buf []byte) (int, uint64, error) {
	var value uint64
	var shift uint
	for n, b := range buf {
		value |= uint64(b&0x7f) << shift
		shift += 7
		if n+1 >= TypeSize.MaxVarint || b&0x80 == 0 {
			return n + 1, value, nil
		}
	}
	return 0, 0, truncated("varuint32", len(buf)+1, len(buf))
}

// UnpackFixed reads width bytes from the front of buf, little-endian.
func UnpackFixed(width int, buf []byte) (uint64, error) {
	d := NewDecoder(buf)
	switch width {
	case TypeSize.UInt8:
		v, err := d.ReadUint8()
		return uint64(v), err
	case TypeSize.UInt16:
		v, err := d.ReadUint16()
		return uint64(v), err
	case TypeSize.UInt32:
		v, err := d.ReadUint32()
		return uint64(v), err
	case TypeSize.UInt64:
		return d.ReadUint64()
	}
	return 0, fmt.Errorf("unpack fixed: unsupported width %d", width)
}

func UnmarshalBinary(data []byte, v interface{}) (err error) {
	decoder := NewDecoder(data)
	return decoder.Decode(v)
}
