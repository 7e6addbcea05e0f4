package prettyprint

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
	sniffLimit      = 8 * 1024
)

// ValidateInput returns ErrBinaryInput if the leading bytes of src look
// binary, or ErrInvalidUTF8 if src is not valid UTF-8.
func ValidateInput(src []byte) error {
	sample := src
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}
	var total, control int
	for _, b := range sample {
		total++
		if b == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(b) {
			control++
		}
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return ErrBinaryInput
	}
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	return nil
}

func isControlByte(b byte) bool {
	if b < 0x09 {
		return true
	}
	if b > 0x0D && b < 0x20 && b != 0x1B {
		return true
	}
	if b == 0x7F {
		return true
	}
	return false
}
