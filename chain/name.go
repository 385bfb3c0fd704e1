package chain

import (
	"regexp"
	"strings"
)

const nameCharmap = ".12345abcdefghijklmnopqrstuvwxyz"

const maxNameLength = 13

var nameRegexp = regexp.MustCompile(`^[.a-z1-5]*[a-z1-5]+[.a-z1-5]*$`)

// IsValidName reports whether s can be packed as a name.
func IsValidName(s string) bool {
	return len(s) <= maxNameLength && nameRegexp.MatchString(s)
}

// StringToName packs s into its 64-bit form. The first 12 characters take
// 5 bits each from the top of the word, a 13th character only keeps the
// low 4 bits of its symbol.
func StringToName(s string) (uint64, error) {
	if !IsValidName(s) {
		return 0, &CodecError{Field: "name", Value: s, Err: ErrInvalidName}
	}
	var name uint64
	for i := 0; i < len(s) && i < 12; i++ {
		name |= (charToSymbol(s[i]) & 0x1f) << uint(64-5*(i+1))
	}
	if len(s) == maxNameLength {
		name |= charToSymbol(s[12]) & 0x0f
	}
	return name, nil
}

// NameToString always yields 13 characters; trailing dots are padding and
// are only removed when stripDots is set.
func NameToString(value uint64, stripDots bool) string {
	out := make([]byte, maxNameLength)
	tmp := value
	for i := 0; i < maxNameLength; i++ {
		if i == 0 {
			out[12-i] = nameCharmap[tmp&0x0f]
			tmp >>= 4
		} else {
			out[12-i] = nameCharmap[tmp&0x1f]
			tmp >>= 5
		}
	}
	s := string(out)
	if stripDots {
		s = strings.TrimRight(s, ".")
	}
	return s
}

func charToSymbol(c byte) uint64 {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1
	}
	return 0
}

func (n Name) Value() (uint64, error) {
	return StringToName(string(n))
}

func (n Name) Pack(e *Encoder) error {
	return e.WriteName(n)
}

func (n *Name) Unpack(d *Decoder) (err error) {
	*n, err = d.ReadName()
	return
}

func (n AccountName) Pack(e *Encoder) error {
	return e.WriteName(Name(n))
}

func (n PermissionName) Pack(e *Encoder) error {
	return e.WriteName(Name(n))
}

func (n ActionName) Pack(e *Encoder) error {
	return e.WriteName(Name(n))
}
