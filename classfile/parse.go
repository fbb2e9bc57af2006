package classfile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dhamidi/classkit/mutf8"
)

func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

func ParseReader(rd io.Reader) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a complete class file. Utf8 entries and attribute payloads
// that need no rewriting share memory with data, so data must not be
// modified while the result is in use.
func Parse(data []byte) (*ClassFile, error) {
	r := newReader(data)

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: 0x%X (expected 0xCAFEBABE)", ErrMalformedMagic, magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	cp, err := parseConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}
	if !r.need(int(interfacesCount) * 2) {
		return nil, fmt.Errorf("failed to read interfaces: %w", r.err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", r.err)
	}
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		m, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		cf.Fields[i] = FieldInfo(m)
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		m, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = MethodInfo(m)
	}

	attrs, err := readAttributes(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}
	cf.Attributes = attrs

	return cf, nil
}

// parseConstantPool reads the pool count and exactly count-1 slots. An
// 8-byte constant fills two slots; the second holds a placeholder.
func parseConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}
	if count == 0 {
		return ConstantPool{}, nil
	}

	cp := make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cp[i-1] = entry
		if tag := entry.Tag(); tag == ConstantLong || tag == ConstantDouble {
			if i+1 >= count {
				return nil, fmt.Errorf("%w: %s at %d has no second slot in a pool of %d", ErrPoolIndexOutOfRange, tag, i, count)
			}
			cp[i] = &ConstantPlaceholder{Owner: i}
			i++
		}
	}
	return cp, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, error) {
	b := r.readU1()
	if r.err != nil {
		return nil, r.err
	}
	tag, err := ParseConstantTag(b)
	if err != nil {
		return nil, err
	}

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		raw := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
		text, err := mutf8.Decode(raw)
		if err != nil {
			return nil, err
		}
		entry = &ConstantUtf8Info{Text: text}

	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}

	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}

	case ConstantLong:
		high := r.readU4()
		low := r.readU4()
		entry = &ConstantLongInfo{Value: int64(uint64(high)<<32 | uint64(low))}

	case ConstantDouble:
		high := r.readU4()
		low := r.readU4()
		entry = &ConstantDoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}

	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}

	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}

	case ConstantFieldref:
		entry = &ConstantFieldrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}

	case ConstantMethodref:
		entry = &ConstantMethodrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}

	case ConstantInterfaceMethodref:
		entry = &ConstantInterfaceMethodrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}

	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}

	case ConstantMethodHandle:
		rawKind := r.readU1()
		index := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		kind, err := ParseMethodHandleKind(rawKind)
		if err != nil {
			return nil, err
		}
		entry = &ConstantMethodHandleInfo{ReferenceKind: kind, ReferenceIndex: index}

	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}

	case ConstantDynamic:
		entry = &ConstantDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}

	case ConstantInvokeDynamic:
		entry = &ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}

	case ConstantModule:
		entry = &ConstantModuleInfo{NameIndex: r.readU2()}

	case ConstantPackage:
		entry = &ConstantPackageInfo{NameIndex: r.readU2()}
	}

	if r.err != nil {
		return nil, r.err
	}
	return entry, nil
}

type member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func readMember(r *reader) (member, error) {
	m := member{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return member{}, r.err
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return member{}, err
	}
	m.Attributes = attrs
	return m, nil
}
