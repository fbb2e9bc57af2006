package classfile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dhamidi/classkit/classfile/classfiletest"
)

func TestClassifyAttributeName(t *testing.T) {
	tests := []struct {
		name string
		want AttributeKind
	}{
		{"Code", KindCode},
		{"StackMapTable", KindStackMapTable},
		{"RuntimeInvisibleParameterAnnotations", KindRuntimeInvisibleParameterAnnotations},
		{"PermittedSubclasses", KindPermittedSubclasses},
		{"Module", KindModule},
		{"code", KindUnknown},
		{"MyCustomAttribute", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyAttributeName(tt.name); got != tt.want {
			t.Errorf("ClassifyAttributeName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if len(attributeNames) != int(KindModule) {
		t.Errorf("attributeNames has %d entries, want %d", len(attributeNames), KindModule)
	}
}

func TestAttributeKind(t *testing.T) {
	b := classfiletest.New("Foo", "")
	b.SourceFile("Foo.java")
	b.ClassAttribute(b.Attribute("Vendor", []byte{1, 2, 3}))
	b.ClassAttribute(classfiletest.Attribute{NameIndex: 2, Payload: nil})

	cf, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cf.Attributes) != 3 {
		t.Fatalf("len(Attributes) = %d, want 3", len(cf.Attributes))
	}

	if kind, err := cf.Attributes[0].Kind(cf.ConstantPool); err != nil || kind != KindSourceFile {
		t.Errorf("Kind() = %v, %v, want SourceFile", kind, err)
	}
	if kind, err := cf.Attributes[1].Kind(cf.ConstantPool); err != nil || kind != KindUnknown {
		t.Errorf("Kind() = %v, %v, want Unknown", kind, err)
	}
	if !reflect.DeepEqual(cf.Attributes[1].Info, []byte{1, 2, 3}) {
		t.Errorf("Info = %v, want [1 2 3]", cf.Attributes[1].Info)
	}
	if _, err := cf.Attributes[2].Kind(cf.ConstantPool); !errors.Is(err, ErrPoolEntryKindMismatch) {
		t.Errorf("Kind() error = %v, want %v", err, ErrPoolEntryKindMismatch)
	}
}

func TestClassMetadataAttributes(t *testing.T) {
	b := classfiletest.New("app/Shape", "java/lang/Object")
	sig := b.Utf8("<T:Ljava/lang/Object;>Ljava/lang/Object;")
	b.ClassAttribute(b.Attribute("Signature", []byte{byte(sig >> 8), byte(sig)}))
	host := b.Class("app/Outer")
	b.ClassAttribute(b.Attribute("NestHost", []byte{byte(host >> 8), byte(host)}))
	circle, square := b.Class("app/Circle"), b.Class("app/Square")
	b.ClassAttribute(b.Attribute("PermittedSubclasses", []byte{0, 2, byte(circle >> 8), byte(circle), byte(square >> 8), byte(square)}))
	ioe := b.Class("java/io/IOException")
	b.Method(0x0001, "read", "()V", b.Attribute("Exceptions", []byte{0, 1, byte(ioe >> 8), byte(ioe)}))

	cf, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cp := cf.ConstantPool

	if got, err := cf.Signature(); err != nil || got != "<T:Ljava/lang/Object;>Ljava/lang/Object;" {
		t.Errorf("Signature() = %q, %v", got, err)
	}
	if got, err := cf.NestHost(); err != nil || got != "app/Outer" {
		t.Errorf("NestHost() = %q, %v", got, err)
	}
	if got, err := cf.NestMembers(); err != nil || got != nil {
		t.Errorf("NestMembers() = %v, %v, want nil", got, err)
	}
	if got, err := cf.PermittedSubclasses(); err != nil || !reflect.DeepEqual(got, []string{"app/Circle", "app/Square"}) {
		t.Errorf("PermittedSubclasses() = %v, %v", got, err)
	}

	m := cf.GetMethod("read", "")
	if got, err := m.Exceptions(cp); err != nil || !reflect.DeepEqual(got, []string{"java/io/IOException"}) {
		t.Errorf("Exceptions() = %v, %v", got, err)
	}
	if got, err := m.Signature(cp); err != nil || got != "" {
		t.Errorf("method Signature() = %q, %v, want empty", got, err)
	}
}

func TestAttributePayloads(t *testing.T) {
	t.Run("signature", func(t *testing.T) {
		got, err := ParseSignature([]byte{0, 7})
		if err != nil || got != 7 {
			t.Errorf("ParseSignature() = %v, %v", got, err)
		}
	})

	t.Run("nest host", func(t *testing.T) {
		got, err := ParseNestHost([]byte{1, 2})
		if err != nil || got != 0x0102 {
			t.Errorf("ParseNestHost() = %v, %v", got, err)
		}
	})

	t.Run("permitted subclasses", func(t *testing.T) {
		got, err := ParsePermittedSubclasses([]byte{0, 1, 0, 4})
		if err != nil || !reflect.DeepEqual(got, []uint16{4}) {
			t.Errorf("ParsePermittedSubclasses() = %v, %v", got, err)
		}
	})

	t.Run("exceptions", func(t *testing.T) {
		got, err := ParseExceptions([]byte{0, 2, 0, 5, 0, 9})
		if err != nil || !reflect.DeepEqual(got, []uint16{5, 9}) {
			t.Errorf("ParseExceptions() = %v, %v", got, err)
		}
	})

	t.Run("inner classes", func(t *testing.T) {
		got, err := ParseInnerClasses([]byte{0, 1, 0, 3, 0, 4, 0, 5, 0x00, 0x09})
		want := []InnerClassEntry{{3, 4, 5, AccPublic | AccStatic}}
		if err != nil || !reflect.DeepEqual(got, want) {
			t.Errorf("ParseInnerClasses() = %v, %v", got, err)
		}
	})

	t.Run("bootstrap methods", func(t *testing.T) {
		got, err := ParseBootstrapMethods([]byte{0, 2, 0, 7, 0, 1, 0, 8, 0, 9, 0, 0})
		want := []BootstrapMethod{
			{BootstrapMethodRef: 7, BootstrapArguments: []uint16{8}},
			{BootstrapMethodRef: 9, BootstrapArguments: []uint16{}},
		}
		if err != nil || !reflect.DeepEqual(got, want) {
			t.Errorf("ParseBootstrapMethods() = %v, %v", got, err)
		}
	})

	t.Run("local variables", func(t *testing.T) {
		got, err := ParseLocalVariableTable([]byte{0, 1, 0, 0, 0, 5, 0, 10, 0, 11, 0, 1})
		want := []LocalVariableEntry{{StartPC: 0, Length: 5, NameIndex: 10, DescriptorIndex: 11, Index: 1}}
		if err != nil || !reflect.DeepEqual(got, want) {
			t.Errorf("ParseLocalVariableTable() = %v, %v", got, err)
		}
	})

	t.Run("method parameters", func(t *testing.T) {
		got, err := ParseMethodParameters([]byte{1, 0, 6, 0x00, 0x10})
		want := []MethodParameter{{NameIndex: 6, AccessFlags: AccFinal}}
		if err != nil || !reflect.DeepEqual(got, want) {
			t.Errorf("ParseMethodParameters() = %v, %v", got, err)
		}
	})

	t.Run("enclosing method", func(t *testing.T) {
		got, err := ParseEnclosingMethod([]byte{0, 3, 0, 0})
		if err != nil || got != (EnclosingMethod{ClassIndex: 3}) {
			t.Errorf("ParseEnclosingMethod() = %v, %v", got, err)
		}
	})

	truncated := []struct {
		name  string
		parse func() error
	}{
		{"code", func() error { _, err := ParseCode([]byte{0, 1, 0, 1, 0, 0, 0, 9, 0x2a}); return err }},
		{"constant value", func() error { _, err := ParseConstantValue([]byte{0}); return err }},
		{"exceptions", func() error { _, err := ParseExceptions([]byte{0, 2, 0, 5}); return err }},
		{"line numbers", func() error { _, err := ParseLineNumberTable([]byte{0, 1, 0}); return err }},
		{"inner classes", func() error { _, err := ParseInnerClasses([]byte{0, 1}); return err }},
		{"bootstrap methods", func() error { _, err := ParseBootstrapMethods([]byte{0, 1, 0, 7, 0, 2, 0, 1}); return err }},
		{"nest members", func() error { _, err := ParseNestMembers(nil); return err }},
		{"signature", func() error { _, err := ParseSignature([]byte{0}); return err }},
		{"nest host", func() error { _, err := ParseNestHost(nil); return err }},
		{"permitted subclasses", func() error { _, err := ParsePermittedSubclasses([]byte{0, 2, 0, 1}); return err }},
	}
	for _, tt := range truncated {
		t.Run("truncated "+tt.name, func(t *testing.T) {
			if err := tt.parse(); !errors.Is(err, ErrTruncated) {
				t.Errorf("error = %v, want %v", err, ErrTruncated)
			}
		})
	}
}

func TestFlagTables(t *testing.T) {
	tests := []struct {
		name  string
		table FlagTable
		mask  AccessFlags
		want  []string
	}{
		{"class", ClassFlags, 0x0421, []string{"public", "super", "abstract"}},
		{"interface", ClassFlags, 0x0601, []string{"public", "interface", "abstract"}},
		{"field volatile", FieldFlags, 0x0040, []string{"volatile"}},
		{"method bridge", MethodFlags, 0x0040, []string{"bridge"}},
		{"method varargs", MethodFlags, 0x0089, []string{"public", "static", "varargs"}},
		{"none", MethodFlags, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.table.Decode(tt.mask); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(0x%04x) = %v, want %v", uint16(tt.mask), got, tt.want)
			}
		})
	}

	if got := FieldFlags.Unknown(0x0421); got != AccSuper|AccAbstract {
		t.Errorf("Unknown() = 0x%04x, want 0x%04x", uint16(got), uint16(AccSuper|AccAbstract))
	}
	if got := ClassFlags.Format(0x0011); got != "public final" {
		t.Errorf("Format() = %q, want %q", got, "public final")
	}
}
