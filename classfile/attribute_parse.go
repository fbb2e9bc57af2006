package classfile

import (
	"fmt"

	"github.com/dhamidi/classkit/bytecode"
)

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// Instructions decodes the method body.
func (c *CodeAttribute) Instructions(opts ...bytecode.Option) ([]bytecode.Instruction, error) {
	return bytecode.NewDecoder(opts...).DecodeAll(c.Code)
}

func (c *CodeAttribute) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(c.Attributes, cp, name)
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

type EnclosingMethod struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

func payloadError(kind AttributeKind, r *reader) error {
	return fmt.Errorf("failed to parse %s attribute: %w", kind, r.err)
}

func ParseCode(info []byte) (*CodeAttribute, error) {
	r := newReader(info)
	code := &CodeAttribute{
		MaxStack:  r.readU2(),
		MaxLocals: r.readU2(),
	}
	codeLength := r.readU4()
	code.Code = r.readBytes(int(codeLength))

	n := r.readU2()
	if r.err != nil {
		return nil, payloadError(KindCode, r)
	}
	code.ExceptionTable = make([]ExceptionTableEntry, n)
	for i := range code.ExceptionTable {
		code.ExceptionTable[i] = ExceptionTableEntry{
			StartPC:   r.readU2(),
			EndPC:     r.readU2(),
			HandlerPC: r.readU2(),
			CatchType: r.readU2(),
		}
	}
	if r.err != nil {
		return nil, payloadError(KindCode, r)
	}

	attrs, err := readAttributes(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Code attribute: %w", err)
	}
	code.Attributes = attrs
	return code, nil
}

func parseIndex(info []byte, kind AttributeKind) (uint16, error) {
	r := newReader(info)
	index := r.readU2()
	if r.err != nil {
		return 0, payloadError(kind, r)
	}
	return index, nil
}

func parseIndexList(info []byte, kind AttributeKind) ([]uint16, error) {
	r := newReader(info)
	n := r.readU2()
	if !r.need(int(n) * 2) {
		return nil, payloadError(kind, r)
	}
	list := make([]uint16, n)
	for i := range list {
		list[i] = r.readU2()
	}
	return list, nil
}

// ParseConstantValue returns the pool index of a field's constant value.
func ParseConstantValue(info []byte) (uint16, error) {
	return parseIndex(info, KindConstantValue)
}

func ParseSourceFile(info []byte) (uint16, error) {
	return parseIndex(info, KindSourceFile)
}

func ParseSignature(info []byte) (uint16, error) {
	return parseIndex(info, KindSignature)
}

func ParseNestHost(info []byte) (uint16, error) {
	return parseIndex(info, KindNestHost)
}

// ParseExceptions returns the Class indexes of a method's throws clause.
func ParseExceptions(info []byte) ([]uint16, error) {
	return parseIndexList(info, KindExceptions)
}

func ParseNestMembers(info []byte) ([]uint16, error) {
	return parseIndexList(info, KindNestMembers)
}

func ParsePermittedSubclasses(info []byte) ([]uint16, error) {
	return parseIndexList(info, KindPermittedSubclasses)
}

func ParseLineNumberTable(info []byte) ([]LineNumberEntry, error) {
	r := newReader(info)
	n := r.readU2()
	if !r.need(int(n) * 4) {
		return nil, payloadError(KindLineNumberTable, r)
	}
	table := make([]LineNumberEntry, n)
	for i := range table {
		table[i] = LineNumberEntry{
			StartPC:    r.readU2(),
			LineNumber: r.readU2(),
		}
	}
	return table, nil
}

// ParseLocalVariableTable also reads LocalVariableTypeTable payloads, whose
// layout is identical with a signature in place of the descriptor.
func ParseLocalVariableTable(info []byte) ([]LocalVariableEntry, error) {
	r := newReader(info)
	n := r.readU2()
	if !r.need(int(n) * 10) {
		return nil, payloadError(KindLocalVariableTable, r)
	}
	table := make([]LocalVariableEntry, n)
	for i := range table {
		table[i] = LocalVariableEntry{
			StartPC:         r.readU2(),
			Length:          r.readU2(),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Index:           r.readU2(),
		}
	}
	return table, nil
}

func ParseInnerClasses(info []byte) ([]InnerClassEntry, error) {
	r := newReader(info)
	n := r.readU2()
	if !r.need(int(n) * 8) {
		return nil, payloadError(KindInnerClasses, r)
	}
	classes := make([]InnerClassEntry, n)
	for i := range classes {
		classes[i] = InnerClassEntry{
			InnerClassInfoIndex:   r.readU2(),
			OuterClassInfoIndex:   r.readU2(),
			InnerNameIndex:        r.readU2(),
			InnerClassAccessFlags: AccessFlags(r.readU2()),
		}
	}
	return classes, nil
}

func ParseBootstrapMethods(info []byte) ([]BootstrapMethod, error) {
	r := newReader(info)
	n := r.readU2()
	methods := make([]BootstrapMethod, 0, n)
	for i := uint16(0); i < n && r.err == nil; i++ {
		ref := r.readU2()
		numArgs := r.readU2()
		if !r.need(int(numArgs) * 2) {
			break
		}
		args := make([]uint16, numArgs)
		for j := range args {
			args[j] = r.readU2()
		}
		methods = append(methods, BootstrapMethod{
			BootstrapMethodRef: ref,
			BootstrapArguments: args,
		})
	}
	if r.err != nil {
		return nil, payloadError(KindBootstrapMethods, r)
	}
	return methods, nil
}

func ParseEnclosingMethod(info []byte) (EnclosingMethod, error) {
	r := newReader(info)
	em := EnclosingMethod{
		ClassIndex:  r.readU2(),
		MethodIndex: r.readU2(),
	}
	if r.err != nil {
		return EnclosingMethod{}, payloadError(KindEnclosingMethod, r)
	}
	return em, nil
}

func ParseMethodParameters(info []byte) ([]MethodParameter, error) {
	r := newReader(info)
	n := r.readU1()
	if !r.need(int(n) * 4) {
		return nil, payloadError(KindMethodParameters, r)
	}
	params := make([]MethodParameter, n)
	for i := range params {
		params[i] = MethodParameter{
			NameIndex:   r.readU2(),
			AccessFlags: AccessFlags(r.readU2()),
		}
	}
	return params, nil
}
