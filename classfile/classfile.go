package classfile

import "fmt"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

func (cf *ClassFile) ClassName() (string, error) {
	name, err := cf.ConstantPool.ClassName(cf.ThisClass)
	if err != nil {
		return "", fmt.Errorf("this class: %w", err)
	}
	return name, nil
}

// SuperClassName returns "" for a class without a superclass.
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	name, err := cf.ConstantPool.ClassName(cf.SuperClass)
	if err != nil {
		return "", fmt.Errorf("super class: %w", err)
	}
	return name, nil
}

func (cf *ClassFile) InterfaceNames() ([]string, error) {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		name, err := cf.ConstantPool.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		names[i] = name
	}
	return names, nil
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

// SourceFile returns the name recorded in the SourceFile attribute, or ""
// when the class has none.
func (cf *ClassFile) SourceFile() (string, error) {
	attr := cf.GetAttribute("SourceFile")
	if attr == nil {
		return "", nil
	}
	index, err := ParseSourceFile(attr.Info)
	if err != nil {
		return "", err
	}
	return cf.ConstantPool.Utf8(index)
}

// Signature returns the generic signature of the class, or "" when it has
// none.
func (cf *ClassFile) Signature() (string, error) {
	return signature(cf.ConstantPool, cf.GetAttribute("Signature"))
}

// NestHost returns "" unless the class names a nest host.
func (cf *ClassFile) NestHost() (string, error) {
	attr := cf.GetAttribute("NestHost")
	if attr == nil {
		return "", nil
	}
	index, err := ParseNestHost(attr.Info)
	if err != nil {
		return "", err
	}
	return cf.ConstantPool.ClassName(index)
}

func (cf *ClassFile) NestMembers() ([]string, error) {
	return classNames(cf.ConstantPool, cf.GetAttribute("NestMembers"), ParseNestMembers)
}

// PermittedSubclasses lists the classes a sealed class allows to extend it.
func (cf *ClassFile) PermittedSubclasses() ([]string, error) {
	return classNames(cf.ConstantPool, cf.GetAttribute("PermittedSubclasses"), ParsePermittedSubclasses)
}

func signature(cp ConstantPool, attr *AttributeInfo) (string, error) {
	if attr == nil {
		return "", nil
	}
	index, err := ParseSignature(attr.Info)
	if err != nil {
		return "", err
	}
	return cp.Utf8(index)
}

func classNames(cp ConstantPool, attr *AttributeInfo, parse func([]byte) ([]uint16, error)) ([]string, error) {
	if attr == nil {
		return nil, nil
	}
	indexes, err := parse(attr.Info)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indexes))
	for i, index := range indexes {
		name, err := cp.ClassName(index)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		names[i] = name
	}
	return names, nil
}

// GetField skips fields whose name cannot be resolved.
func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if n, err := cf.ConstantPool.Utf8(cf.Fields[i].NameIndex); err == nil && n == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// GetMethod matches any descriptor when descriptor is empty.
func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		n, d, err := cf.Methods[i].NameAndDescriptor(cf.ConstantPool)
		if err != nil || n != name {
			continue
		}
		if descriptor == "" || d == descriptor {
			return &cf.Methods[i]
		}
	}
	return nil
}

func (cf *ClassFile) GetMethods(name string) []*MethodInfo {
	var methods []*MethodInfo
	for i := range cf.Methods {
		if n, err := cf.ConstantPool.Utf8(cf.Methods[i].NameIndex); err == nil && n == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	return findAttribute(cf.Attributes, cf.ConstantPool, name)
}
