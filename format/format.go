package format

import (
	"encoding"
	"io"
	"slices"
	"strings"

	"github.com/dhamidi/classkit/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *classfile.ClassFile) error
}

// New returns the encoder registered under name, or nil.
func New(name string, w io.Writer) Encoder {
	switch name {
	case "json":
		return NewJSONEncoder(w)
	case "line":
		return NewLineEncoder(w)
	}
	return nil
}

func classKind(c *classfile.ClassFile) string {
	switch {
	case c.IsAnnotation():
		return "annotation"
	case c.IsEnum():
		return "enum"
	case c.IsInterface():
		return "interface"
	case c.IsModule():
		return "module"
	default:
		return "class"
	}
}

func visibility(f classfile.AccessFlags) string {
	switch {
	case f.IsPublic():
		return "public"
	case f.IsProtected():
		return "protected"
	case f.IsPrivate():
		return "private"
	default:
		return "package"
	}
}

var (
	visibilityNames = []string{"public", "protected", "private"}
	classKindNames  = []string{"public", "super", "interface", "annotation", "enum", "module"}
)

// modifiers decodes mask through table, leaving out the names in skip.
func modifiers(table classfile.FlagTable, mask classfile.AccessFlags, skip []string) []string {
	var mods []string
	for _, name := range table.Decode(mask) {
		if !slices.Contains(skip, name) {
			mods = append(mods, name)
		}
	}
	return mods
}

func simpleName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func packageName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return classfile.InternalToSourceName(name[:i])
	}
	return ""
}
