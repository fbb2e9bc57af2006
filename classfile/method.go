package classfile

import "fmt"

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) NameAndDescriptor(cp ConstantPool) (name, descriptor string, err error) {
	return nameAndDescriptor(cp, m.NameIndex, m.DescriptorIndex)
}

func nameAndDescriptor(cp ConstantPool, nameIndex, descriptorIndex uint16) (string, string, error) {
	name, err := cp.Utf8(nameIndex)
	if err != nil {
		return "", "", fmt.Errorf("name: %w", err)
	}
	descriptor, err := cp.Utf8(descriptorIndex)
	if err != nil {
		return "", "", fmt.Errorf("descriptor of %s: %w", name, err)
	}
	return name, descriptor, nil
}

func (m *MethodInfo) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(m.Attributes, cp, name)
}

// Code parses the method's Code attribute. Abstract and native methods have
// none and yield nil, nil.
func (m *MethodInfo) Code(cp ConstantPool) (*CodeAttribute, error) {
	attr := m.GetAttribute(cp, "Code")
	if attr == nil {
		return nil, nil
	}
	return ParseCode(attr.Info)
}

func (m *MethodInfo) Signature(cp ConstantPool) (string, error) {
	return signature(cp, m.GetAttribute(cp, "Signature"))
}

// Exceptions returns the classes named in the method's throws clause.
func (m *MethodInfo) Exceptions(cp ConstantPool) ([]string, error) {
	return classNames(cp, m.GetAttribute(cp, "Exceptions"), ParseExceptions)
}

func (m *MethodInfo) IsPublic() bool       { return m.AccessFlags.IsPublic() }
func (m *MethodInfo) IsPrivate() bool      { return m.AccessFlags.IsPrivate() }
func (m *MethodInfo) IsProtected() bool    { return m.AccessFlags.IsProtected() }
func (m *MethodInfo) IsStatic() bool       { return m.AccessFlags.IsStatic() }
func (m *MethodInfo) IsFinal() bool        { return m.AccessFlags.IsFinal() }
func (m *MethodInfo) IsSynchronized() bool { return m.AccessFlags.IsSynchronized() }
func (m *MethodInfo) IsBridge() bool       { return m.AccessFlags.IsBridge() }
func (m *MethodInfo) IsVarargs() bool      { return m.AccessFlags.IsVarargs() }
func (m *MethodInfo) IsNative() bool       { return m.AccessFlags.IsNative() }
func (m *MethodInfo) IsAbstract() bool     { return m.AccessFlags.IsAbstract() }
func (m *MethodInfo) IsStrict() bool       { return m.AccessFlags.IsStrict() }
func (m *MethodInfo) IsSynthetic() bool    { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	name, err := cp.Utf8(m.NameIndex)
	return err == nil && name == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	name, err := cp.Utf8(m.NameIndex)
	return err == nil && name == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) (*MethodDescriptor, error) {
	desc, err := cp.Utf8(m.DescriptorIndex)
	if err != nil {
		return nil, err
	}
	md := ParseMethodDescriptor(desc)
	if md == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDescriptor, desc)
	}
	return md, nil
}
