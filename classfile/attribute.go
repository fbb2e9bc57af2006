package classfile

import "fmt"

// AttributeInfo is a raw attribute. Info is a view into the class file
// buffer; payloads are parsed on request with the Parse* functions.
type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
}

type AttributeKind uint8

const (
	KindUnknown AttributeKind = iota
	KindCode
	KindConstantValue
	KindStackMapTable
	KindExceptions
	KindInnerClasses
	KindEnclosingMethod
	KindSynthetic
	KindSignature
	KindSourceFile
	KindSourceDebugExtension
	KindLineNumberTable
	KindLocalVariableTable
	KindLocalVariableTypeTable
	KindDeprecated
	KindRuntimeVisibleAnnotations
	KindRuntimeInvisibleAnnotations
	KindRuntimeVisibleParameterAnnotations
	KindRuntimeInvisibleParameterAnnotations
	KindAnnotationDefault
	KindBootstrapMethods
	KindMethodParameters
	KindNestHost
	KindNestMembers
	KindPermittedSubclasses
	KindRecord
	KindModule
)

var attributeNames = map[string]AttributeKind{
	"Code":                                 KindCode,
	"ConstantValue":                        KindConstantValue,
	"StackMapTable":                        KindStackMapTable,
	"Exceptions":                           KindExceptions,
	"InnerClasses":                         KindInnerClasses,
	"EnclosingMethod":                      KindEnclosingMethod,
	"Synthetic":                            KindSynthetic,
	"Signature":                            KindSignature,
	"SourceFile":                           KindSourceFile,
	"SourceDebugExtension":                 KindSourceDebugExtension,
	"LineNumberTable":                      KindLineNumberTable,
	"LocalVariableTable":                   KindLocalVariableTable,
	"LocalVariableTypeTable":               KindLocalVariableTypeTable,
	"Deprecated":                           KindDeprecated,
	"RuntimeVisibleAnnotations":            KindRuntimeVisibleAnnotations,
	"RuntimeInvisibleAnnotations":          KindRuntimeInvisibleAnnotations,
	"RuntimeVisibleParameterAnnotations":   KindRuntimeVisibleParameterAnnotations,
	"RuntimeInvisibleParameterAnnotations": KindRuntimeInvisibleParameterAnnotations,
	"AnnotationDefault":                    KindAnnotationDefault,
	"BootstrapMethods":                     KindBootstrapMethods,
	"MethodParameters":                     KindMethodParameters,
	"NestHost":                             KindNestHost,
	"NestMembers":                          KindNestMembers,
	"PermittedSubclasses":                  KindPermittedSubclasses,
	"Record":                               KindRecord,
	"Module":                               KindModule,
}

var attributeKindNames = func() map[AttributeKind]string {
	m := make(map[AttributeKind]string, len(attributeNames))
	for name, kind := range attributeNames {
		m[kind] = name
	}
	return m
}()

func (k AttributeKind) String() string {
	if name, ok := attributeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ClassifyAttributeName maps an attribute name to its kind. Matching is
// exact and case-sensitive.
func ClassifyAttributeName(name string) AttributeKind {
	return attributeNames[name]
}

// Name resolves the attribute's name through the pool.
func (a *AttributeInfo) Name(cp ConstantPool) (string, error) {
	name, err := cp.Utf8(a.NameIndex)
	if err != nil {
		return "", fmt.Errorf("attribute name: %w", err)
	}
	return name, nil
}

// Kind classifies the attribute by the Utf8 entry its name index refers to.
func (a *AttributeInfo) Kind(cp ConstantPool) (AttributeKind, error) {
	name, err := a.Name(cp)
	if err != nil {
		return KindUnknown, err
	}
	return ClassifyAttributeName(name), nil
}

func readAttributes(r *reader) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read attributes count: %w", r.err)
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		attrs[i].NameIndex = r.readU2()
		length := r.readU4()
		attrs[i].Info = r.readBytes(int(length))
		if r.err != nil {
			return nil, fmt.Errorf("failed to read attribute %d: %w", i, r.err)
		}
	}
	return attrs, nil
}

func findAttribute(attrs []AttributeInfo, cp ConstantPool, name string) *AttributeInfo {
	for i := range attrs {
		if n, err := cp.Utf8(attrs[i].NameIndex); err == nil && n == name {
			return &attrs[i]
		}
	}
	return nil
}
