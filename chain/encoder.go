package chain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// Packer is implemented by every type with a fixed wire layout.
type Packer interface {
	Pack(e *Encoder) error
}

// Encoder implements the EOSIO packing rules on top of an io.Writer.
type Encoder struct {
	output io.Writer
	count  int
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		output: w,
		count:  0,
	}
}

// Count returns the number of bytes written so far.
func (e *Encoder) Count() int {
	return e.count
}

func (e *Encoder) Encode(v interface{}) error {
	switch cv := v.(type) {
	case Packer:
		return cv.Pack(e)
	case uint8:
		return e.WriteUint8(cv)
	case int8:
		return e.WriteInt8(cv)
	case uint16:
		return e.WriteUint16(cv)
	case int16:
		return e.WriteInt16(cv)
	case uint32:
		return e.WriteUint32(cv)
	case int32:
		return e.WriteInt32(cv)
	case uint64:
		return e.WriteUint64(cv)
	case int64:
		return e.WriteInt64(cv)
	case bool:
		return e.WriteBool(cv)
	case string:
		return e.WriteString(cv)
	case []byte:
		return e.WriteBytes(cv)
	case time.Time:
		return e.WriteTimePointSec(cv)
	case SHA256Type:
		return e.WriteSHA256(cv)
	default:
		return fmt.Errorf("encode: unsupported type %T", v)
	}
}

func (e *Encoder) toWriter(b []byte) (err error) {
	e.count += len(b)
	_, err = e.output.Write(b)
	return
}

// WriteRaw copies b without any length prefix.
func (e *Encoder) WriteRaw(b []byte) error {
	return e.toWriter(b)
}

// WriteBytes writes b prefixed with its varuint32 length.
func (e *Encoder) WriteBytes(b []byte) error {
	if err := e.WriteVaruint32(uint32(len(b))); err != nil {
		return err
	}
	return e.toWriter(b)
}

func (e *Encoder) WriteString(s string) error {
	return e.WriteBytes([]byte(s))
}

func (e *Encoder) WriteVaruint32(v uint32) error {
	return e.toWriter(PackVaruint32(v))
}

func (e *Encoder) WriteByte(b byte) error {
	return e.toWriter([]byte{b})
}

func (e *Encoder) WriteBool(b bool) error {
	var out byte
	if b {
		out = 1
	}
	return e.WriteByte(out)
}

func (e *Encoder) WriteUint8(i uint8) error {
	return e.WriteByte(i)
}

func (e *Encoder) WriteInt8(i int8) error {
	return e.WriteByte(byte(i))
}

func (e *Encoder) WriteUint16(i uint16) error {
	buf := make([]byte, TypeSize.UInt16)
	binary.LittleEndian.PutUint16(buf, i)
	return e.toWriter(buf)
}

func (e *Encoder) WriteInt16(i int16) error {
	return e.WriteUint16(uint16(i))
}

func (e *Encoder) WriteUint32(i uint32) error {
	buf := make([]byte, TypeSize.UInt32)
	binary.LittleEndian.PutUint32(buf, i)
	return e.toWriter(buf)
}

func (e *Encoder) WriteInt32(i int32) error {
	return e.WriteUint32(uint32(i))
}

func (e *Encoder) WriteUint64(i uint64) error {
	buf := make([]byte, TypeSize.UInt64)
	binary.LittleEndian.PutUint64(buf, i)
	return e.toWriter(buf)
}

func (e *Encoder) WriteInt64(i int64) error {
	return e.WriteUint64(uint64(i))
}

func (e *Encoder) WriteName(name Name) error {
	val, err := StringToName(string(name))
	if err != nil {
		return err
	}
	return e.WriteUint64(val)
}

// WriteTimePointSec writes t as whole UTC seconds since the epoch. Times
// before 1970 or after 2106-02-07T06:28:15 do not fit and are rejected.
func (e *Encoder) WriteTimePointSec(t time.Time) error {
	secs := t.UTC().Unix()
	if secs < 0 || secs > math.MaxUint32 {
		return &CodecError{Field: "time_point_sec", Value: t.UTC().Format(time.RFC3339), Err: ErrOutOfRange}
	}
	return e.WriteUint32(uint32(secs))
}

func (e *Encoder) WriteSHA256(h SHA256Type) error {
	return e.toWriter(h[:])
}

// PackArray writes the varuint32 element count followed by each item.
func PackArray[T any](e *Encoder, items []T, pack func(*Encoder, T) error) error {
	if err := e.WriteVaruint32(uint32(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := pack(e, item); err != nil {
			return err
		}
	}
	return nil
}

// PackVaruint32 emits the low 7 bits per byte, high bit set on every byte
// but the last.
func PackVaruint32(v uint32) []byte {
	out := make([]byte, 0, 5)
	val := v
	for {
		b := byte(val & 0x7f)
		val >>= 7
		if val > 0 {
			b |= 0x80
		}
		out = append(out, b)
		if val == 0 {
			break
		}
	}
	return out
}

// PackFixed encodes v on width bytes, little-endian. Width is 1, 2, 4 or 8
// and v must fit in it.
func PackFixed(width int, v uint64) ([]byte, error) {
	if width > 0 && width < TypeSize.UInt64 && v>>(8*uint(width)) != 0 {
		return nil, &CodecError{Field: "uint" + strconv.Itoa(8*width), Value: strconv.FormatUint(v, 10), Err: ErrOutOfRange}
	}
	buf := new(bytes.Buffer)
	e := NewEncoder(buf)
	var err error
	switch width {
	case TypeSize.UInt8:
		err = e.WriteUint8(uint8(v))
	case TypeSize.UInt16:
		err = e.WriteUint16(uint16(v))
	case TypeSize.UInt32:
		err = e.WriteUint32(uint32(v))
	case TypeSize.UInt64:
		err = e.WriteUint64(v)
	default:
		return nil, fmt.Errorf("pack fixed: unsupported width %d", width)
	}
	return buf.Bytes(), err
}

func MarshalBinary(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := NewEncoder(buf)
	err := encoder.Encode(v)
	return buf.Bytes(), err
}
