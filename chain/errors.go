package chain

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated          = errors.New("truncated input")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidVarint      = errors.New("invalid varint")
	ErrInvalidHex         = errors.New("invalid hex")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrOutOfRange         = errors.New("value out of range")

	ErrMissingBinArgs = errors.New("no binargs, action data must be serialized first")
	ErrNotLinked      = errors.New("transaction is not linked to a reference block")
)

// CodecError reports which field failed to encode or decode. Want and Have
// are byte counts and are only set for length failures.
type CodecError struct {
	Field string
	Value string
	Want  int
	Have  int
	Err   error
}

func (e *CodecError) Error() string {
	switch {
	case e.Want > 0:
		return fmt.Sprintf("%s: %s, required [%d] bytes, remaining [%d]", e.Field, e.Err, e.Want, e.Have)
	case e.Value != "":
		return fmt.Sprintf("%s: %s [%s]", e.Field, e.Err, e.Value)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func truncated(field string, want, have int) error {
	return &CodecError{Field: field, Want: want, Have: have, Err: ErrTruncated}
}

// SerializationError names the action that could not be packed.
type SerializationError struct {
	Index   int
	Account AccountName
	Name    ActionName
	Err     error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("action [%d] %s::%s: %s", e.Index, e.Account, e.Name, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
