package bytecode

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrIncomplete means the code array ends inside an instruction.
	ErrIncomplete              = errors.New("incomplete instruction")
	ErrUnalignedSwitchTooShort = fmt.Errorf("switch shorter than its alignment: %w", ErrIncomplete)
	ErrUnrecognizedOpcode      = errors.New("unrecognized opcode")
	ErrInvalidSwitchRange      = errors.New("tableswitch high below low")
)

// DecodeError reports the instruction a decode failed on.
type DecodeError struct {
	PC     int
	Opcode Opcode
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pc %d: %s: %v", e.PC, e.Opcode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Decoder struct {
	order binary.ByteOrder
}

type Option func(*Decoder)

// WithByteOrder sets the byte order of multi-byte operands. Class files are
// big-endian, which is the default.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(d *Decoder) {
		d.order = order
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{order: binary.BigEndian}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// DecodeAll decodes code with the default big-endian decoder.
func DecodeAll(code []byte) ([]Instruction, error) {
	return defaultDecoder.DecodeAll(code)
}

// DecodeAll decodes a whole code array. A trailing partial instruction ends
// the stream and is dropped. Any other failure discards everything decoded
// so far and returns a *DecodeError.
func (d *Decoder) DecodeAll(code []byte) ([]Instruction, error) {
	var out []Instruction
	cur := Cursor{}
	for cur.Pos < len(code) {
		in, next, err := d.Decode(code, cur)
		if errors.Is(err, ErrIncomplete) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, in)
		cur = next
	}
	return out, nil
}

// Decode decodes the instruction at cur and returns the cursor just past it.
// On failure the returned cursor is cur and err is a *DecodeError.
func (d *Decoder) Decode(code []byte, cur Cursor) (Instruction, Cursor, error) {
	in, err := d.decode(code, cur)
	if err != nil {
		return Instruction{}, cur, &DecodeError{PC: cur.Pos, Opcode: in.Opcode, Err: err}
	}
	return in, cur.Advance(in.Size()), nil
}

func (d *Decoder) decode(code []byte, cur Cursor) (Instruction, error) {
	if cur.Pos < 0 || cur.Pos >= len(code) {
		return Instruction{}, ErrIncomplete
	}
	b := code[cur.Pos:]
	in := Instruction{PC: cur.Pos, Opcode: Opcode(b[0])}

	if in.Opcode == Wide {
		return d.decodeWide(b, in)
	}

	shape := shapes[in.Opcode]
	if shape == ShapeInvalid {
		return in, ErrUnrecognizedOpcode
	}
	if shape == ShapeTableSwitch || shape == ShapeLookupSwitch {
		return d.decodeSwitch(code, cur, in)
	}
	if len(b) < shapeSizes[shape] {
		return in, ErrIncomplete
	}

	switch shape {
	case ShapeU8:
		in.Index = uint32(b[1])
	case ShapeU16:
		in.Index = uint32(d.order.Uint16(b[1:]))
	case ShapeU32:
		in.Index = d.order.Uint32(b[1:])
	case ShapeU8U8:
		in.Index = uint32(b[1])
		in.Const = int32(int8(b[2]))
	case ShapeU16U8:
		in.Index = uint32(d.order.Uint16(b[1:]))
		in.Count = b[3]
	case ShapeU16U8Zero:
		in.Index = uint32(d.order.Uint16(b[1:]))
		in.Count = b[3]
		if b[4] != 0 {
			return in, fmt.Errorf("%w: non-zero fourth operand byte", ErrUnrecognizedOpcode)
		}
	case ShapeU16ZeroPair:
		in.Index = uint32(d.order.Uint16(b[1:]))
		if b[3] != 0 || b[4] != 0 {
			return in, fmt.Errorf("%w: non-zero trailing operand bytes", ErrUnrecognizedOpcode)
		}
	}
	return in, nil
}

func (d *Decoder) decodeWide(b []byte, in Instruction) (Instruction, error) {
	if len(b) < 2 {
		return in, ErrIncomplete
	}
	in.Wide = true
	in.Opcode = Opcode(b[1])

	shape := wideShapes[in.Opcode]
	if shape == ShapeInvalid {
		return in, fmt.Errorf("%w: after wide prefix", ErrUnrecognizedOpcode)
	}
	if len(b) < shapeSizes[shape] {
		return in, ErrIncomplete
	}
	in.Index = uint32(d.order.Uint16(b[2:]))
	if shape == ShapeWideU16I16 {
		in.Const = int32(int16(d.order.Uint16(b[4:])))
	}
	return in, nil
}

func (d *Decoder) decodeSwitch(code []byte, cur Cursor, in Instruction) (Instruction, error) {
	if len(code)-cur.Pos-1 < 4 {
		return in, ErrUnalignedSwitchTooShort
	}
	p := cur.Pos + 1 + cur.Padding()

	if in.Opcode == Tableswitch {
		if len(code)-p < 12 {
			return in, ErrIncomplete
		}
		in.Default = int32(d.order.Uint32(code[p:]))
		in.Low = int32(d.order.Uint32(code[p+4:]))
		in.High = int32(d.order.Uint32(code[p+8:]))
		if in.High < in.Low {
			return in, fmt.Errorf("%w: low %d, high %d", ErrInvalidSwitchRange, in.Low, in.High)
		}
		p += 12
		n := int64(in.High) - int64(in.Low) + 1
		if int64(len(code)-p) < n*4 {
			return in, ErrIncomplete
		}
		in.JumpOffsets = make([]int32, n)
		for i := range in.JumpOffsets {
			in.JumpOffsets[i] = int32(d.order.Uint32(code[p:]))
			p += 4
		}
		return in, nil
	}

	if len(code)-p < 8 {
		return in, ErrIncomplete
	}
	in.Default = int32(d.order.Uint32(code[p:]))
	n := int64(d.order.Uint32(code[p+4:]))
	p += 8
	if int64(len(code)-p) < n*8 {
		return in, ErrIncomplete
	}
	in.Pairs = make([]MatchOffset, n)
	for i := range in.Pairs {
		in.Pairs[i] = MatchOffset{
			Match:  int32(d.order.Uint32(code[p:])),
			Offset: int32(d.order.Uint32(code[p+4:])),
		}
		p += 8
	}
	return in, nil
}
