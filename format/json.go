package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/classkit/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := e.buildClassData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name                string       `json:"name"`
	SimpleName          string       `json:"simpleName"`
	Package             string       `json:"package"`
	SuperClass          string       `json:"superClass,omitempty"`
	Interfaces          []string     `json:"interfaces,omitempty"`
	Signature           string       `json:"signature,omitempty"`
	SourceFile          string       `json:"sourceFile,omitempty"`
	NestHost            string       `json:"nestHost,omitempty"`
	NestMembers         []string     `json:"nestMembers,omitempty"`
	PermittedSubclasses []string     `json:"permittedSubclasses,omitempty"`
	Visibility          string       `json:"visibility"`
	Kind                string       `json:"kind"`
	Modifiers           []string     `json:"modifiers,omitempty"`
	Version             jsonVersion  `json:"version"`
	Fields              []jsonField  `json:"fields,omitempty"`
	Methods             []jsonMethod `json:"methods,omitempty"`
	Attributes          []string     `json:"attributes,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonField struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Type       jsonType `json:"type"`
	Signature  string   `json:"signature,omitempty"`
	Visibility string   `json:"visibility"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

type jsonMethod struct {
	Name       string          `json:"name"`
	Descriptor string          `json:"descriptor"`
	ReturnType jsonType        `json:"returnType"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Signature  string          `json:"signature,omitempty"`
	Exceptions []string        `json:"exceptions,omitempty"`
	Visibility string          `json:"visibility"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Code       *jsonCode       `json:"code,omitempty"`
}

type jsonParameter struct {
	Type jsonType `json:"type"`
}

type jsonType struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

type jsonCode struct {
	MaxStack  uint16 `json:"maxStack"`
	MaxLocals uint16 `json:"maxLocals"`
	ArgsSize  int    `json:"argsSize"`
	Length    int    `json:"length"`
	Handlers  int    `json:"exceptionHandlers,omitempty"`
}

func newJSONType(ft *classfile.FieldType) jsonType {
	if ft == nil {
		return jsonType{Name: "void"}
	}
	name := ft.BaseType
	if name == "" {
		name = classfile.InternalToSourceName(ft.ClassName)
	}
	return jsonType{Name: name, ArrayDepth: ft.ArrayDepth}
}

func sourceNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = classfile.InternalToSourceName(n)
	}
	return out
}

// argsSize counts the local variable slots taken by the receiver and
// parameters on entry to a method.
func argsSize(m *classfile.MethodInfo, md *classfile.MethodDescriptor) int {
	n := 0
	if !m.IsStatic() {
		n++
	}
	for i := range md.Parameters {
		n += md.Parameters[i].Slots()
	}
	return n
}

func (e *JSONEncoder) buildClassData() (jsonClass, error) {
	c := e.class
	name, err := c.ClassName()
	if err != nil {
		return jsonClass{}, err
	}
	super, err := c.SuperClassName()
	if err != nil {
		return jsonClass{}, err
	}
	interfaces, err := c.InterfaceNames()
	if err != nil {
		return jsonClass{}, err
	}
	sourceFile, err := c.SourceFile()
	if err != nil {
		return jsonClass{}, err
	}
	signature, err := c.Signature()
	if err != nil {
		return jsonClass{}, fmt.Errorf("signature: %w", err)
	}
	nestHost, err := c.NestHost()
	if err != nil {
		return jsonClass{}, fmt.Errorf("nest host: %w", err)
	}
	nestMembers, err := c.NestMembers()
	if err != nil {
		return jsonClass{}, fmt.Errorf("nest members: %w", err)
	}
	permitted, err := c.PermittedSubclasses()
	if err != nil {
		return jsonClass{}, fmt.Errorf("permitted subclasses: %w", err)
	}
	data := jsonClass{
		Name:                classfile.InternalToSourceName(name),
		SimpleName:          simpleName(name),
		Package:             packageName(name),
		SuperClass:          classfile.InternalToSourceName(super),
		Signature:           signature,
		SourceFile:          sourceFile,
		NestHost:            classfile.InternalToSourceName(nestHost),
		NestMembers:         sourceNames(nestMembers),
		PermittedSubclasses: sourceNames(permitted),
		Visibility:          visibility(c.AccessFlags),
		Kind:                classKind(c),
		Modifiers:           modifiers(classfile.ClassFlags, c.AccessFlags, classKindNames),
		Version: jsonVersion{
			Major: c.MajorVersion,
			Minor: c.MinorVersion,
		},
	}
	data.Interfaces = sourceNames(interfaces)
	if data.Fields, err = e.buildFields(); err != nil {
		return jsonClass{}, err
	}
	if data.Methods, err = e.buildMethods(); err != nil {
		return jsonClass{}, err
	}
	for _, a := range c.Attributes {
		n, err := a.Name(c.ConstantPool)
		if err != nil {
			return jsonClass{}, err
		}
		data.Attributes = append(data.Attributes, n)
	}
	return data, nil
}

func (e *JSONEncoder) buildFields() ([]jsonField, error) {
	cp := e.class.ConstantPool
	fields := e.class.Fields
	result := make([]jsonField, len(fields))
	for i := range fields {
		f := &fields[i]
		name, desc, err := f.NameAndDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		ft, err := f.ParsedDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		signature, err := f.Signature(cp)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		result[i] = jsonField{
			Name:       name,
			Descriptor: desc,
			Type:       newJSONType(ft),
			Signature:  signature,
			Visibility: visibility(f.AccessFlags),
			Modifiers:  modifiers(classfile.FieldFlags, f.AccessFlags, visibilityNames),
		}
	}
	return result, nil
}

func (e *JSONEncoder) buildMethods() ([]jsonMethod, error) {
	cp := e.class.ConstantPool
	methods := e.class.Methods
	result := make([]jsonMethod, len(methods))
	for i := range methods {
		m := &methods[i]
		name, desc, err := m.NameAndDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		md, err := m.ParsedDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		code, err := m.Code(cp)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		signature, err := m.Signature(cp)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		exceptions, err := m.Exceptions(cp)
		if err != nil {
			return nil, fmt.Errorf("method %s: exceptions: %w", name, err)
		}
		result[i] = jsonMethod{
			Name:       name,
			Descriptor: desc,
			ReturnType: newJSONType(md.ReturnType),
			Parameters: buildParameters(md.Parameters),
			Signature:  signature,
			Exceptions: sourceNames(exceptions),
			Visibility: visibility(m.AccessFlags),
			Modifiers:  modifiers(classfile.MethodFlags, m.AccessFlags, visibilityNames),
		}
		if code != nil {
			result[i].Code = &jsonCode{
				MaxStack:  code.MaxStack,
				MaxLocals: code.MaxLocals,
				ArgsSize:  argsSize(m, md),
				Length:    len(code.Code),
				Handlers:  len(code.ExceptionTable),
			}
		}
	}
	return result, nil
}

func buildParameters(params []classfile.FieldType) []jsonParameter {
	result := make([]jsonParameter, len(params))
	for i := range params {
		result[i] = jsonParameter{Type: newJSONType(&params[i])}
	}
	return result
}
