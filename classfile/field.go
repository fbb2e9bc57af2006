package classfile

import "fmt"

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) NameAndDescriptor(cp ConstantPool) (name, descriptor string, err error) {
	return nameAndDescriptor(cp, f.NameIndex, f.DescriptorIndex)
}

func (f *FieldInfo) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(f.Attributes, cp, name)
}

// ConstantValue returns the pool index named by the field's ConstantValue
// attribute, or 0 if it has none.
func (f *FieldInfo) ConstantValue(cp ConstantPool) (uint16, error) {
	attr := f.GetAttribute(cp, "ConstantValue")
	if attr == nil {
		return 0, nil
	}
	return ParseConstantValue(attr.Info)
}

func (f *FieldInfo) Signature(cp ConstantPool) (string, error) {
	return signature(cp, f.GetAttribute(cp, "Signature"))
}

func (f *FieldInfo) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *FieldInfo) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *FieldInfo) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *FieldInfo) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *FieldInfo) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *FieldInfo) IsVolatile() bool  { return f.AccessFlags.IsVolatile() }
func (f *FieldInfo) IsTransient() bool { return f.AccessFlags.IsTransient() }
func (f *FieldInfo) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *FieldInfo) IsEnum() bool      { return f.AccessFlags.IsEnum() }

func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) (*FieldType, error) {
	desc, err := cp.Utf8(f.DescriptorIndex)
	if err != nil {
		return nil, err
	}
	ft := ParseFieldDescriptor(desc)
	if ft == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDescriptor, desc)
	}
	return ft, nil
}
