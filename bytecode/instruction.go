package bytecode

import (
	"fmt"
	"strings"
)

// Instruction is one decoded instruction. Which operand fields are set
// depends on the shape:
//
//	u8, u16, u32, u8-wide   Index
//	u8-u8, wide-u16-i16     Index (local), Const (increment)
//	u16-u8, u16-u8-zero     Index, Count
//	u16-zero-pair           Index
//	tableswitch             Default, Low, High, JumpOffsets
//	lookupswitch            Default, Pairs
//
// Pool indexes are left unresolved.
type Instruction struct {
	PC     int
	Opcode Opcode
	Wide   bool

	Index uint32
	Const int32
	Count uint8

	Default     int32
	Low         int32
	High        int32
	JumpOffsets []int32
	Pairs       []MatchOffset
}

type MatchOffset struct {
	Match  int32
	Offset int32
}

func (in *Instruction) Shape() Shape {
	if in.Wide {
		return wideShapes[in.Opcode]
	}
	return shapes[in.Opcode]
}

func (in *Instruction) Mnemonic() string {
	return in.Opcode.String()
}

// Size is the number of bytes the instruction occupies in the code array.
func (in *Instruction) Size() int {
	switch s := in.Shape(); s {
	case ShapeTableSwitch:
		return 1 + Cursor{Pos: in.PC}.Padding() + 12 + 4*len(in.JumpOffsets)
	case ShapeLookupSwitch:
		return 1 + Cursor{Pos: in.PC}.Padding() + 8 + 8*len(in.Pairs)
	case ShapeInvalid:
		return 0
	default:
		return shapeSizes[s]
	}
}

// BranchTarget returns the absolute target of a conditional branch, goto or
// jsr. Switches report their targets through Targets.
func (in *Instruction) BranchTarget() (int, bool) {
	if !in.Opcode.isBranch() || in.Wide {
		return 0, false
	}
	if in.Shape() == ShapeU32 {
		return in.PC + int(int32(in.Index)), true
	}
	return in.PC + int(int16(in.Index)), true
}

// Targets lists every absolute jump target of the instruction, default first
// for switches.
func (in *Instruction) Targets() []int {
	switch in.Shape() {
	case ShapeTableSwitch:
		targets := make([]int, 0, 1+len(in.JumpOffsets))
		targets = append(targets, in.PC+int(in.Default))
		for _, off := range in.JumpOffsets {
			targets = append(targets, in.PC+int(off))
		}
		return targets
	case ShapeLookupSwitch:
		targets := make([]int, 0, 1+len(in.Pairs))
		targets = append(targets, in.PC+int(in.Default))
		for _, p := range in.Pairs {
			targets = append(targets, in.PC+int(p.Offset))
		}
		return targets
	}
	if t, ok := in.BranchTarget(); ok {
		return []int{t}
	}
	return nil
}

func (in *Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d: ", in.PC)
	if in.Wide {
		sb.WriteString("wide ")
	}
	sb.WriteString(in.Mnemonic())

	switch in.Shape() {
	case ShapeU8, ShapeU8Wide, ShapeU16, ShapeU32, ShapeU16ZeroPair:
		switch {
		case in.Opcode == Bipush:
			fmt.Fprintf(&sb, " %d", int8(in.Index))
		case in.Opcode == Sipush:
			fmt.Fprintf(&sb, " %d", int16(in.Index))
		case in.Opcode.isBranch():
			t, _ := in.BranchTarget()
			fmt.Fprintf(&sb, " %d", t)
		case isPoolOperand(in.Opcode):
			fmt.Fprintf(&sb, " #%d", in.Index)
		default:
			fmt.Fprintf(&sb, " %d", in.Index)
		}
	case ShapeU8U8, ShapeWideU16I16:
		fmt.Fprintf(&sb, " %d, %d", in.Index, in.Const)
	case ShapeU16U8, ShapeU16U8Zero:
		fmt.Fprintf(&sb, " #%d, %d", in.Index, in.Count)
	case ShapeTableSwitch:
		fmt.Fprintf(&sb, " %d..%d default %d", in.Low, in.High, in.PC+int(in.Default))
		for i, off := range in.JumpOffsets {
			fmt.Fprintf(&sb, " %d:%d", in.Low+int32(i), in.PC+int(off))
		}
	case ShapeLookupSwitch:
		fmt.Fprintf(&sb, " default %d", in.PC+int(in.Default))
		for _, p := range in.Pairs {
			fmt.Fprintf(&sb, " %d:%d", p.Match, in.PC+int(p.Offset))
		}
	}
	return sb.String()
}

func isPoolOperand(op Opcode) bool {
	switch op {
	case Ldc, LdcW, Ldc2W,
		Getstatic, Putstatic, Getfield, Putfield,
		Invokevirtual, Invokespecial, Invokestatic, Invokeinterface, Invokedynamic,
		New, Anewarray, Checkcast, Instanceof, Multianewarray:
		return true
	}
	return false
}

// IsPoolOperand reports whether the instruction's Index is a constant pool
// index.
func (in *Instruction) IsPoolOperand() bool {
	return !in.Wide && isPoolOperand(in.Opcode)
}
