package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrMalformedMagic        = errors.New("invalid magic number")
	ErrTruncated             = errors.New("truncated input")
	ErrUnrecognizedTag       = errors.New("unrecognized tag")
	ErrPoolIndexOutOfRange   = errors.New("constant pool index out of range")
	ErrPoolEntryKindMismatch = errors.New("constant pool entry kind mismatch")
)

// reader walks a class file held in memory. The first failed read is sticky:
// later reads return zero values and leave err unchanged.
type reader struct {
	data []byte
	off  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.data)-r.off < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, len(r.data)-r.off)
		return false
	}
	return true
}

func (r *reader) readU1() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

func (r *reader) readU2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) readU4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

// readBytes returns a slice of the underlying buffer, not a copy.
func (r *reader) readBytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := r.data[r.off : r.off+n : r.off+n]
	r.off += n
	return b
}

func (r *reader) rest() []byte {
	return r.data[r.off:]
}

func (r *reader) skip(n int) {
	if r.need(n) {
		r.off += n
	}
}
