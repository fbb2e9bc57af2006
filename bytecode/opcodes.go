package bytecode

import "fmt"

type Opcode uint8

const (
	Nop Opcode = iota
	AconstNull
	IconstM1
	Iconst0
	Iconst1
	Iconst2
	Iconst3
	Iconst4
	Iconst5
	Lconst0
	Lconst1
	Fconst0
	Fconst1
	Fconst2
	Dconst0
	Dconst1
	Bipush
	Sipush
	Ldc
	LdcW
	Ldc2W
	Iload
	Lload
	Fload
	Dload
	Aload
	Iload0
	Iload1
	Iload2
	Iload3
	Lload0
	Lload1
	Lload2
	Lload3
	Fload0
	Fload1
	Fload2
	Fload3
	Dload0
	Dload1
	Dload2
	Dload3
	Aload0
	Aload1
	Aload2
	Aload3
	Iaload
	Laload
	Faload
	Daload
	Aaload
	Baload
	Caload
	Saload
	Istore
	Lstore
	Fstore
	Dstore
	Astore
	Istore0
	Istore1
	Istore2
	Istore3
	Lstore0
	Lstore1
	Lstore2
	Lstore3
	Fstore0
	Fstore1
	Fstore2
	Fstore3
	Dstore0
	Dstore1
	Dstore2
	Dstore3
	Astore0
	Astore1
	Astore2
	Astore3
	Iastore
	Lastore
	Fastore
	Dastore
	Aastore
	Bastore
	Castore
	Sastore
	Pop
	Pop2
	Dup
	DupX1
	DupX2
	Dup2
	Dup2X1
	Dup2X2
	Swap
	Iadd
	Ladd
	Fadd
	Dadd
	Isub
	Lsub
	Fsub
	Dsub
	Imul
	Lmul
	Fmul
	Dmul
	Idiv
	Ldiv
	Fdiv
	Ddiv
	Irem
	Lrem
	Frem
	Drem
	Ineg
	Lneg
	Fneg
	Dneg
	Ishl
	Lshl
	Ishr
	Lshr
	Iushr
	Lushr
	Iand
	Land
	Ior
	Lor
	Ixor
	Lxor
	Iinc
	I2l
	I2f
	I2d
	L2i
	L2f
	L2d
	F2i
	F2l
	F2d
	D2i
	D2l
	D2f
	I2b
	I2c
	I2s
	Lcmp
	Fcmpl
	Fcmpg
	Dcmpl
	Dcmpg
	Ifeq
	Ifne
	Iflt
	Ifge
	Ifgt
	Ifle
	IfIcmpeq
	IfIcmpne
	IfIcmplt
	IfIcmpge
	IfIcmpgt
	IfIcmple
	IfAcmpeq
	IfAcmpne
	Goto
	Jsr
	Ret
	Tableswitch
	Lookupswitch
	Ireturn
	Lreturn
	Freturn
	Dreturn
	Areturn
	Return
	Getstatic
	Putstatic
	Getfield
	Putfield
	Invokevirtual
	Invokespecial
	Invokestatic
	Invokeinterface
	Invokedynamic
	New
	Newarray
	Anewarray
	Arraylength
	Athrow
	Checkcast
	Instanceof
	Monitorenter
	Monitorexit
	Wide
	Multianewarray
	Ifnull
	Ifnonnull
	GotoW
	JsrW
	Breakpoint

	Impdep1 Opcode = 0xFE
	Impdep2 Opcode = 0xFF
)

var mnemonics = [256]string{
	Nop:             "nop",
	AconstNull:      "aconst_null",
	IconstM1:        "iconst_m1",
	Iconst0:         "iconst_0",
	Iconst1:         "iconst_1",
	Iconst2:         "iconst_2",
	Iconst3:         "iconst_3",
	Iconst4:         "iconst_4",
	Iconst5:         "iconst_5",
	Lconst0:         "lconst_0",
	Lconst1:         "lconst_1",
	Fconst0:         "fconst_0",
	Fconst1:         "fconst_1",
	Fconst2:         "fconst_2",
	Dconst0:         "dconst_0",
	Dconst1:         "dconst_1",
	Bipush:          "bipush",
	Sipush:          "sipush",
	Ldc:             "ldc",
	LdcW:            "ldc_w",
	Ldc2W:           "ldc2_w",
	Iload:           "iload",
	Lload:           "lload",
	Fload:           "fload",
	Dload:           "dload",
	Aload:           "aload",
	Iload0:          "iload_0",
	Iload1:          "iload_1",
	Iload2:          "iload_2",
	Iload3:          "iload_3",
	Lload0:          "lload_0",
	Lload1:          "lload_1",
	Lload2:          "lload_2",
	Lload3:          "lload_3",
	Fload0:          "fload_0",
	Fload1:          "fload_1",
	Fload2:          "fload_2",
	Fload3:          "fload_3",
	Dload0:          "dload_0",
	Dload1:          "dload_1",
	Dload2:          "dload_2",
	Dload3:          "dload_3",
	Aload0:          "aload_0",
	Aload1:          "aload_1",
	Aload2:          "aload_2",
	Aload3:          "aload_3",
	Iaload:          "iaload",
	Laload:          "laload",
	Faload:          "faload",
	Daload:          "daload",
	Aaload:          "aaload",
	Baload:          "baload",
	Caload:          "caload",
	Saload:          "saload",
	Istore:          "istore",
	Lstore:          "lstore",
	Fstore:          "fstore",
	Dstore:          "dstore",
	Astore:          "astore",
	Istore0:         "istore_0",
	Istore1:         "istore_1",
	Istore2:         "istore_2",
	Istore3:         "istore_3",
	Lstore0:         "lstore_0",
	Lstore1:         "lstore_1",
	Lstore2:         "lstore_2",
	Lstore3:         "lstore_3",
	Fstore0:         "fstore_0",
	Fstore1:         "fstore_1",
	Fstore2:         "fstore_2",
	Fstore3:         "fstore_3",
	Dstore0:         "dstore_0",
	Dstore1:         "dstore_1",
	Dstore2:         "dstore_2",
	Dstore3:         "dstore_3",
	Astore0:         "astore_0",
	Astore1:         "astore_1",
	Astore2:         "astore_2",
	Astore3:         "astore_3",
	Iastore:         "iastore",
	Lastore:         "lastore",
	Fastore:         "fastore",
	Dastore:         "dastore",
	Aastore:         "aastore",
	Bastore:         "bastore",
	Castore:         "castore",
	Sastore:         "sastore",
	Pop:             "pop",
	Pop2:            "pop2",
	Dup:             "dup",
	DupX1:           "dup_x1",
	DupX2:           "dup_x2",
	Dup2:            "dup2",
	Dup2X1:          "dup2_x1",
	Dup2X2:          "dup2_x2",
	Swap:            "swap",
	Iadd:            "iadd",
	Ladd:            "ladd",
	Fadd:            "fadd",
	Dadd:            "dadd",
	Isub:            "isub",
	Lsub:            "lsub",
	Fsub:            "fsub",
	Dsub:            "dsub",
	Imul:            "imul",
	Lmul:            "lmul",
	Fmul:            "fmul",
	Dmul:            "dmul",
	Idiv:            "idiv",
	Ldiv:            "ldiv",
	Fdiv:            "fdiv",
	Ddiv:            "ddiv",
	Irem:            "irem",
	Lrem:            "lrem",
	Frem:            "frem",
	Drem:            "drem",
	Ineg:            "ineg",
	Lneg:            "lneg",
	Fneg:            "fneg",
	Dneg:            "dneg",
	Ishl:            "ishl",
	Lshl:            "lshl",
	Ishr:            "ishr",
	Lshr:            "lshr",
	Iushr:           "iushr",
	Lushr:           "lushr",
	Iand:            "iand",
	Land:            "land",
	Ior:             "ior",
	Lor:             "lor",
	Ixor:            "ixor",
	Lxor:            "lxor",
	Iinc:            "iinc",
	I2l:             "i2l",
	I2f:             "i2f",
	I2d:             "i2d",
	L2i:             "l2i",
	L2f:             "l2f",
	L2d:             "l2d",
	F2i:             "f2i",
	F2l:             "f2l",
	F2d:             "f2d",
	D2i:             "d2i",
	D2l:             "d2l",
	D2f:             "d2f",
	I2b:             "i2b",
	I2c:             "i2c",
	I2s:             "i2s",
	Lcmp:            "lcmp",
	Fcmpl:           "fcmpl",
	Fcmpg:           "fcmpg",
	Dcmpl:           "dcmpl",
	Dcmpg:           "dcmpg",
	Ifeq:            "ifeq",
	Ifne:            "ifne",
	Iflt:            "iflt",
	Ifge:            "ifge",
	Ifgt:            "ifgt",
	Ifle:            "ifle",
	IfIcmpeq:        "if_icmpeq",
	IfIcmpne:        "if_icmpne",
	IfIcmplt:        "if_icmplt",
	IfIcmpge:        "if_icmpge",
	IfIcmpgt:        "if_icmpgt",
	IfIcmple:        "if_icmple",
	IfAcmpeq:        "if_acmpeq",
	IfAcmpne:        "if_acmpne",
	Goto:            "goto",
	Jsr:             "jsr",
	Ret:             "ret",
	Tableswitch:     "tableswitch",
	Lookupswitch:    "lookupswitch",
	Ireturn:         "ireturn",
	Lreturn:         "lreturn",
	Freturn:         "freturn",
	Dreturn:         "dreturn",
	Areturn:         "areturn",
	Return:          "return",
	Getstatic:       "getstatic",
	Putstatic:       "putstatic",
	Getfield:        "getfield",
	Putfield:        "putfield",
	Invokevirtual:   "invokevirtual",
	Invokespecial:   "invokespecial",
	Invokestatic:    "invokestatic",
	Invokeinterface: "invokeinterface",
	Invokedynamic:   "invokedynamic",
	New:             "new",
	Newarray:        "newarray",
	Anewarray:       "anewarray",
	Arraylength:     "arraylength",
	Athrow:          "athrow",
	Checkcast:       "checkcast",
	Instanceof:      "instanceof",
	Monitorenter:    "monitorenter",
	Monitorexit:     "monitorexit",
	Wide:            "wide",
	Multianewarray:  "multianewarray",
	Ifnull:          "ifnull",
	Ifnonnull:       "ifnonnull",
	GotoW:           "goto_w",
	JsrW:            "jsr_w",
	Breakpoint:      "breakpoint",
	Impdep1:         "impdep1",
	Impdep2:         "impdep2",
}

func (op Opcode) String() string {
	if name := mnemonics[op]; name != "" {
		return name
	}
	return fmt.Sprintf("opcode(0x%02x)", uint8(op))
}

type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeNiladic
	ShapeU8
	ShapeU8Wide
	ShapeU16
	ShapeU16ZeroPair
	ShapeU32
	ShapeU8U8
	ShapeU16U8Zero
	ShapeU16U8
	ShapeWideU16I16
	ShapeLookupSwitch
	ShapeTableSwitch
)

var shapeNames = [...]string{
	ShapeInvalid:      "invalid",
	ShapeNiladic:      "niladic",
	ShapeU8:           "u8",
	ShapeU8Wide:       "u8-wide",
	ShapeU16:          "u16",
	ShapeU16ZeroPair:  "u16-zero-pair",
	ShapeU32:          "u32",
	ShapeU8U8:         "u8-u8",
	ShapeU16U8Zero:    "u16-u8-zero",
	ShapeU16U8:        "u16-u8",
	ShapeWideU16I16:   "wide-u16-i16",
	ShapeLookupSwitch: "lookupswitch",
	ShapeTableSwitch:  "tableswitch",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// Encoded length of each fixed-size shape, tag and wide prefix included.
var shapeSizes = [...]int{
	ShapeNiladic:     1,
	ShapeU8:          2,
	ShapeU8Wide:      4,
	ShapeU16:         3,
	ShapeU16ZeroPair: 5,
	ShapeU32:         5,
	ShapeU8U8:        3,
	ShapeU16U8Zero:   5,
	ShapeU16U8:       4,
	ShapeWideU16I16:  6,
}

// shapes is keyed by opcode. Opcodes without operands are filled in by init;
// wide and the unassigned opcodes stay ShapeInvalid.
var shapes = [256]Shape{
	Bipush:          ShapeU8,
	Sipush:          ShapeU16,
	Ldc:             ShapeU8,
	LdcW:            ShapeU16,
	Ldc2W:           ShapeU16,
	Iload:           ShapeU8,
	Lload:           ShapeU8,
	Fload:           ShapeU8,
	Dload:           ShapeU8,
	Aload:           ShapeU8,
	Istore:          ShapeU8,
	Lstore:          ShapeU8,
	Fstore:          ShapeU8,
	Dstore:          ShapeU8,
	Astore:          ShapeU8,
	Iinc:            ShapeU8U8,
	Ifeq:            ShapeU16,
	Ifne:            ShapeU16,
	Iflt:            ShapeU16,
	Ifge:            ShapeU16,
	Ifgt:            ShapeU16,
	Ifle:            ShapeU16,
	IfIcmpeq:        ShapeU16,
	IfIcmpne:        ShapeU16,
	IfIcmplt:        ShapeU16,
	IfIcmpge:        ShapeU16,
	IfIcmpgt:        ShapeU16,
	IfIcmple:        ShapeU16,
	IfAcmpeq:        ShapeU16,
	IfAcmpne:        ShapeU16,
	Goto:            ShapeU16,
	Jsr:             ShapeU16,
	Ret:             ShapeU8,
	Tableswitch:     ShapeTableSwitch,
	Lookupswitch:    ShapeLookupSwitch,
	Getstatic:       ShapeU16,
	Putstatic:       ShapeU16,
	Getfield:        ShapeU16,
	Putfield:        ShapeU16,
	Invokevirtual:   ShapeU16,
	Invokespecial:   ShapeU16,
	Invokestatic:    ShapeU16,
	Invokeinterface: ShapeU16U8Zero,
	Invokedynamic:   ShapeU16ZeroPair,
	New:             ShapeU16,
	Newarray:        ShapeU8,
	Anewarray:       ShapeU16,
	Checkcast:       ShapeU16,
	Instanceof:      ShapeU16,
	Multianewarray:  ShapeU16U8,
	Ifnull:          ShapeU16,
	Ifnonnull:       ShapeU16,
	GotoW:           ShapeU32,
	JsrW:            ShapeU32,
}

// wideShapes is keyed by the opcode that follows the wide prefix.
var wideShapes = [256]Shape{
	Iload:  ShapeU8Wide,
	Fload:  ShapeU8Wide,
	Aload:  ShapeU8Wide,
	Lload:  ShapeU8Wide,
	Dload:  ShapeU8Wide,
	Istore: ShapeU8Wide,
	Fstore: ShapeU8Wide,
	Astore: ShapeU8Wide,
	Lstore: ShapeU8Wide,
	Dstore: ShapeU8Wide,
	Ret:    ShapeU8Wide,
	Iinc:   ShapeWideU16I16,
}

func init() {
	for op, name := range mnemonics {
		if name != "" && shapes[op] == ShapeInvalid && Opcode(op) != Wide {
			shapes[op] = ShapeNiladic
		}
	}
}

// ShapeOf returns the encoding shape of op, or ShapeInvalid for the wide
// prefix and unassigned opcodes.
func ShapeOf(op Opcode) Shape {
	return shapes[op]
}

func (op Opcode) isBranch() bool {
	switch {
	case op >= Ifeq && op <= Jsr:
		return true
	case op == Ifnull, op == Ifnonnull, op == GotoW, op == JsrW:
		return true
	}
	return false
}
