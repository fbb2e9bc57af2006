// Package mutf8 decodes the "modified UTF-8" encoding used by the Java class
// file format for CONSTANT_Utf8 entries.
//
// Modified UTF-8 differs from standard UTF-8 in two ways: U+0000 is encoded
// as the two bytes 0xC0 0x80 and never appears raw, and supplementary
// characters are encoded as a surrogate pair of two three-byte sequences
// instead of one four-byte sequence.
package mutf8

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalid is matched by every hard decoding failure.
	ErrInvalid = errors.New("invalid modified UTF-8")

	ErrMalformedByte    = fmt.Errorf("%w: malformed byte", ErrInvalid)
	ErrIllegalCodepoint = fmt.Errorf("%w: illegal codepoint", ErrInvalid)
	ErrEmbeddedNUL      = fmt.Errorf("%w: raw NUL byte", ErrInvalid)

	// ErrIncomplete reports a sequence that runs past the end of its span.
	// It does not match ErrInvalid.
	ErrIncomplete = errors.New("incomplete modified UTF-8 sequence")
)

type class uint8

const (
	classASCII class = iota
	classError
	classTwo
	classThree
	classSix
)

var classes = func() (t [256]class) {
	for b := 0; b < 256; b++ {
		switch {
		case b <= 0x7F:
			t[b] = classASCII
		case b <= 0xBF:
			t[b] = classError
		case b <= 0xDF:
			t[b] = classTwo
		case b == 0xED:
			t[b] = classSix
		case b <= 0xEF:
			t[b] = classThree
		default:
			t[b] = classError
		}
	}
	return t
}()

// DecodePrefixed reads a big-endian u2 length followed by that many bytes of
// modified UTF-8 and returns the decoded text and the bytes that follow it.
func DecodePrefixed(b []byte) (Text, []byte, error) {
	if len(b) < 2 {
		return Text{}, b, ErrIncomplete
	}
	n := int(binary.BigEndian.Uint16(b))
	b = b[2:]
	if len(b) < n {
		return Text{}, b, fmt.Errorf("%w: need %d bytes, have %d", ErrIncomplete, n, len(b))
	}
	t, err := Decode(b[:n])
	if err != nil {
		return Text{}, b, err
	}
	return t, b[n:], nil
}

// Decode decodes an unprefixed span. Spans that are already valid UTF-8 are
// returned as a borrowed view of b.
func Decode(b []byte) (Text, error) {
	if utf8.Valid(b) && bytes.IndexByte(b, 0) < 0 {
		return Borrowed(b), nil
	}
	s, err := decodeSlow(b)
	if err != nil {
		return Text{}, err
	}
	return Owned(s), nil
}

func decodeSlow(b []byte) (string, error) {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		lead := b[i]
		var r rune
		switch classes[lead] {
		case classASCII:
			if lead == 0 {
				return "", fmt.Errorf("%w at offset %d", ErrEmbeddedNUL, i)
			}
			r = rune(lead)
			i++
		case classTwo:
			if i+2 > len(b) {
				return "", ErrIncomplete
			}
			if !continuation(b[i+1]) {
				return "", fmt.Errorf("%w 0x%02X at offset %d", ErrMalformedByte, b[i+1], i+1)
			}
			r = rune(lead&0x1F)<<6 | rune(b[i+1]&0x3F)
			i += 2
		case classSix:
			// 0xED 0x80..0x9F is an ordinary three-byte BMP code point.
			if i+1 < len(b) && b[i+1] >= 0xA0 {
				if i+6 > len(b) {
					return "", ErrIncomplete
				}
				v, w, y, z := rune(b[i+1]), rune(b[i+2]), rune(b[i+4]), rune(b[i+5])
				r = 0x10000 + (v&0x0F)<<16 + (w&0x3F)<<10 + (y&0x0F)<<6 + z&0x3F
				i += 6
				break
			}
			fallthrough
		case classThree:
			if i+3 > len(b) {
				return "", ErrIncomplete
			}
			if !continuation(b[i+1]) || !continuation(b[i+2]) {
				return "", fmt.Errorf("%w in sequence at offset %d", ErrMalformedByte, i)
			}
			r = rune(lead&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			i += 3
		default:
			return "", fmt.Errorf("%w 0x%02X at offset %d", ErrMalformedByte, lead, i)
		}
		if !utf8.ValidRune(r) {
			return "", fmt.Errorf("%w U+%04X", ErrIllegalCodepoint, r)
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out), nil
}

func continuation(b byte) bool {
	return b&0xC0 == 0x80
}

// Encode returns the modified UTF-8 encoding of s, without a length prefix.
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			out = append(out, 0xE0|byte(r>>12), 0x80|byte(r>>6&0x3F), 0x80|byte(r&0x3F))
		default:
			r -= 0x10000
			hi := 0xD800 + (r >> 10)
			lo := 0xDC00 + (r & 0x3FF)
			out = append(out,
				0xE0|byte(hi>>12), 0x80|byte(hi>>6&0x3F), 0x80|byte(hi&0x3F),
				0xE0|byte(lo>>12), 0x80|byte(lo>>6&0x3F), 0x80|byte(lo&0x3F))
		}
	}
	return out
}
