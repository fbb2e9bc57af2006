package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classkit/classfile"
)

// LineEncoder writes one tab-separated record per class, field and method.
type LineEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class
	cp := c.ConstantPool

	name, err := c.ClassName()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&sb, "%s\t%s\t%s\n", classKind(c), classfile.InternalToSourceName(name), e.classModifiersStr())

	for i := range c.Fields {
		f := &c.Fields[i]
		name, _, err := f.NameAndDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		ft, err := f.ParsedDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
			name,
			ft.String(),
			visibility(f.AccessFlags),
			joinOrDash(modifiers(classfile.FieldFlags, f.AccessFlags, visibilityNames)),
		)
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		name, _, err := m.NameAndDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		md, err := m.ParsedDescriptor(cp)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\t%s\n",
			name,
			returnTypeStr(md.ReturnType),
			parametersStr(md.Parameters),
			visibility(m.AccessFlags),
			joinOrDash(modifiers(classfile.MethodFlags, m.AccessFlags, visibilityNames)),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) classModifiersStr() string {
	c := e.class
	mods := []string{visibility(c.AccessFlags)}
	mods = append(mods, modifiers(classfile.ClassFlags, c.AccessFlags, classKindNames)...)
	return strings.Join(mods, ",")
}

func joinOrDash(mods []string) string {
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func returnTypeStr(ft *classfile.FieldType) string {
	if ft == nil {
		return "void"
	}
	return ft.String()
}

func parametersStr(params []classfile.FieldType) string {
	if len(params) == 0 {
		return "-"
	}
	var parts []string
	for i := range params {
		parts = append(parts, params[i].String())
	}
	return strings.Join(parts, ",")
}
