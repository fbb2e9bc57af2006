package classfile

import (
	"fmt"

	"github.com/dhamidi/classkit/mutf8"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Text mutf8.Text
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }
func (c *ConstantUtf8Info) String() string   { return c.Text.String() }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantPlaceholder fills the slot after a Long or Double entry. The slot
// exists only to keep the pool numbering and cannot be looked up.
type ConstantPlaceholder struct {
	Owner uint16
}

func (c *ConstantPlaceholder) Tag() ConstantTag { return 0 }

// ConstantPool holds the pool slots. Pool index i lives at cp[i-1]; index 0
// is never valid.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at a 1-based pool index.
func (cp ConstantPool) Entry(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp) {
		return nil, fmt.Errorf("%w: %d (pool has %d slots)", ErrPoolIndexOutOfRange, index, len(cp))
	}
	entry := cp[index-1]
	if p, ok := entry.(*ConstantPlaceholder); ok {
		return nil, fmt.Errorf("%w: %d is the upper half of the 8-byte constant at %d", ErrPoolIndexOutOfRange, index, p.Owner)
	}
	return entry, nil
}

func lookup[T ConstantPoolEntry](cp ConstantPool, index uint16, want ConstantTag) (T, error) {
	var zero T
	entry, err := cp.Entry(index)
	if err != nil {
		return zero, err
	}
	v, ok := entry.(T)
	if !ok {
		return zero, fmt.Errorf("%w: index %d is %s, want %s", ErrPoolEntryKindMismatch, index, entry.Tag(), want)
	}
	return v, nil
}

func (cp ConstantPool) Utf8Text(index uint16) (mutf8.Text, error) {
	entry, err := lookup[*ConstantUtf8Info](cp, index, ConstantUtf8)
	if err != nil {
		return mutf8.Text{}, err
	}
	return entry.Text, nil
}

func (cp ConstantPool) Utf8(index uint16) (string, error) {
	text, err := cp.Utf8Text(index)
	if err != nil {
		return "", err
	}
	return text.String(), nil
}

// ClassName follows a Class entry to the Utf8 entry holding its name.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := lookup[*ConstantClassInfo](cp, index, ConstantClass)
	if err != nil {
		return "", err
	}
	name, err := cp.Utf8(entry.NameIndex)
	if err != nil {
		return "", fmt.Errorf("name of class %d: %w", index, err)
	}
	return name, nil
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := lookup[*ConstantNameAndTypeInfo](cp, index, ConstantNameAndType)
	if err != nil {
		return "", "", err
	}
	if name, err = cp.Utf8(entry.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(entry.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

func (cp ConstantPool) String(index uint16) (string, error) {
	entry, err := lookup[*ConstantStringInfo](cp, index, ConstantString)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.StringIndex)
}

func (cp ConstantPool) ModuleName(index uint16) (string, error) {
	entry, err := lookup[*ConstantModuleInfo](cp, index, ConstantModule)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.NameIndex)
}

func (cp ConstantPool) PackageName(index uint16) (string, error) {
	entry, err := lookup[*ConstantPackageInfo](cp, index, ConstantPackage)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.NameIndex)
}

func (cp ConstantPool) Integer(index uint16) (int32, error) {
	entry, err := lookup[*ConstantIntegerInfo](cp, index, ConstantInteger)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

func (cp ConstantPool) Long(index uint16) (int64, error) {
	entry, err := lookup[*ConstantLongInfo](cp, index, ConstantLong)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

func (cp ConstantPool) Float(index uint16) (float32, error) {
	entry, err := lookup[*ConstantFloatInfo](cp, index, ConstantFloat)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

func (cp ConstantPool) Double(index uint16) (float64, error) {
	entry, err := lookup[*ConstantDoubleInfo](cp, index, ConstantDouble)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

// MemberRef is a resolved Fieldref, Methodref or InterfaceMethodref.
type MemberRef struct {
	Kind       ConstantTag
	Class      string
	Name       string
	Descriptor string
}

func (m MemberRef) String() string {
	return m.Class + "." + m.Name + ":" + m.Descriptor
}

func (cp ConstantPool) MemberRef(index uint16) (MemberRef, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return MemberRef{}, err
	}
	var classIndex, natIndex uint16
	switch e := entry.(type) {
	case *ConstantFieldrefInfo:
		classIndex, natIndex = e.ClassIndex, e.NameAndTypeIndex
	case *ConstantMethodrefInfo:
		classIndex, natIndex = e.ClassIndex, e.NameAndTypeIndex
	case *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex = e.ClassIndex, e.NameAndTypeIndex
	default:
		return MemberRef{}, fmt.Errorf("%w: index %d is %s, want a member reference", ErrPoolEntryKindMismatch, index, entry.Tag())
	}
	ref := MemberRef{Kind: entry.Tag()}
	if ref.Class, err = cp.ClassName(classIndex); err != nil {
		return MemberRef{}, err
	}
	if ref.Name, ref.Descriptor, err = cp.NameAndType(natIndex); err != nil {
		return MemberRef{}, err
	}
	return ref, nil
}

func (cp ConstantPool) MethodHandle(index uint16) (*ConstantMethodHandleInfo, error) {
	return lookup[*ConstantMethodHandleInfo](cp, index, ConstantMethodHandle)
}

func (cp ConstantPool) MethodType(index uint16) (string, error) {
	entry, err := lookup[*ConstantMethodTypeInfo](cp, index, ConstantMethodType)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.DescriptorIndex)
}

func (cp ConstantPool) Dynamic(index uint16) (*ConstantDynamicInfo, error) {
	return lookup[*ConstantDynamicInfo](cp, index, ConstantDynamic)
}

func (cp ConstantPool) InvokeDynamic(index uint16) (*ConstantInvokeDynamicInfo, error) {
	return lookup[*ConstantInvokeDynamicInfo](cp, index, ConstantInvokeDynamic)
}
