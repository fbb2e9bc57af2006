package classfile

import (
	"errors"
	"math"
	"testing"

	"github.com/dhamidi/classkit/classfile/classfiletest"
)

func TestConstantPoolTwoSlotEntries(t *testing.T) {
	b := classfiletest.New("Foo", "")
	longIndex := b.Long(-5)
	doubleIndex := b.Double(math.Pi)
	after := b.Utf8("after")

	cf, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cp := cf.ConstantPool

	if longIndex != 3 || doubleIndex != 5 || after != 7 {
		t.Fatalf("indexes = %d, %d, %d, want 3, 5, 7", longIndex, doubleIndex, after)
	}
	if v, err := cp.Long(longIndex); err != nil || v != -5 {
		t.Errorf("Long(%d) = %d, %v, want -5", longIndex, v, err)
	}
	if v, err := cp.Double(doubleIndex); err != nil || v != math.Pi {
		t.Errorf("Double(%d) = %v, %v, want pi", doubleIndex, v, err)
	}

	for _, index := range []uint16{longIndex + 1, doubleIndex + 1} {
		if _, err := cp.Entry(index); !errors.Is(err, ErrPoolIndexOutOfRange) {
			t.Errorf("Entry(%d) error = %v, want %v", index, err, ErrPoolIndexOutOfRange)
		}
		if _, err := cp.Utf8(index); !errors.Is(err, ErrPoolIndexOutOfRange) {
			t.Errorf("Utf8(%d) error = %v, want %v", index, err, ErrPoolIndexOutOfRange)
		}
		placeholder, ok := cp[index-1].(*ConstantPlaceholder)
		if !ok || placeholder.Owner != index-1 {
			t.Errorf("slot %d = %#v, want placeholder for %d", index, cp[index-1], index-1)
		}
	}

	if s, err := cp.Utf8(after); err != nil || s != "after" {
		t.Errorf("Utf8(%d) = %q, %v, want %q", after, s, err, "after")
	}
}

func TestConstantPoolLookupErrors(t *testing.T) {
	b := classfiletest.New("Foo", "")
	str := b.String("hello")
	integer := b.Integer(7)
	method := b.Methodref("Foo", "bar", "()V")
	iface := b.InterfaceMethodref("java/util/List", "size", "()I")

	cf, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cp := cf.ConstantPool

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"index 0", func() error { _, err := cp.Entry(0); return err }, ErrPoolIndexOutOfRange},
		{"past end", func() error { _, err := cp.Entry(uint16(len(cp) + 1)); return err }, ErrPoolIndexOutOfRange},
		{"max index", func() error { _, err := cp.Utf8(65535); return err }, ErrPoolIndexOutOfRange},
		{"class name of Utf8", func() error { _, err := cp.ClassName(1); return err }, ErrPoolEntryKindMismatch},
		{"Utf8 of Class", func() error { _, err := cp.Utf8(2); return err }, ErrPoolEntryKindMismatch},
		{"integer of String", func() error { _, err := cp.Integer(str); return err }, ErrPoolEntryKindMismatch},
		{"long of Integer", func() error { _, err := cp.Long(integer); return err }, ErrPoolEntryKindMismatch},
		{"member ref of Class", func() error { _, err := cp.MemberRef(2); return err }, ErrPoolEntryKindMismatch},
		{"name and type of Methodref", func() error { _, _, err := cp.NameAndType(method); return err }, ErrPoolEntryKindMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("resolved", func(t *testing.T) {
		if s, err := cp.String(str); err != nil || s != "hello" {
			t.Errorf("String(%d) = %q, %v", str, s, err)
		}
		if v, err := cp.Integer(integer); err != nil || v != 7 {
			t.Errorf("Integer(%d) = %d, %v", integer, v, err)
		}
		ref, err := cp.MemberRef(iface)
		if err != nil {
			t.Fatalf("MemberRef(%d) error = %v", iface, err)
		}
		want := MemberRef{Kind: ConstantInterfaceMethodref, Class: "java/util/List", Name: "size", Descriptor: "()I"}
		if ref != want {
			t.Errorf("MemberRef(%d) = %+v, want %+v", iface, ref, want)
		}
	})
}

func TestUtf8TextOwnership(t *testing.T) {
	b := classfiletest.New("Foo", "")
	plain := b.Utf8("plain")
	withNUL := b.Utf8("a\x00b")

	data := b.Bytes()
	cf, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	text, err := cf.ConstantPool.Utf8Text(plain)
	if err != nil {
		t.Fatal(err)
	}
	if !text.IsBorrowed() {
		t.Error("plain ASCII text should borrow the class file buffer")
	}

	text, err = cf.ConstantPool.Utf8Text(withNUL)
	if err != nil {
		t.Fatal(err)
	}
	if text.IsBorrowed() {
		t.Error("text with an encoded NUL should be owned")
	}
	if text.String() != "a\x00b" {
		t.Errorf("Utf8Text(%d) = %q, want %q", withNUL, text.String(), "a\x00b")
	}
}

func TestConstantTags(t *testing.T) {
	for b := 0; b < 256; b++ {
		tag, err := ParseConstantTag(uint8(b))
		_, known := constantTagNames[ConstantTag(b)]
		if known != (err == nil) {
			t.Errorf("ParseConstantTag(%d) = %v, %v", b, tag, err)
		}
		if err != nil && !errors.Is(err, ErrUnrecognizedTag) {
			t.Errorf("ParseConstantTag(%d) error = %v, want %v", b, err, ErrUnrecognizedTag)
		}
	}
	if ConstantMethodHandle.String() != "MethodHandle" {
		t.Errorf("String() = %q", ConstantMethodHandle.String())
	}
	if ConstantTag(2).String() != "ConstantTag(2)" {
		t.Errorf("String() = %q", ConstantTag(2).String())
	}

	for b := 0; b < 12; b++ {
		_, err := ParseMethodHandleKind(uint8(b))
		if valid := b >= 1 && b <= 9; valid != (err == nil) {
			t.Errorf("ParseMethodHandleKind(%d) error = %v", b, err)
		}
	}
	if RefInvokeStatic.String() != "invokeStatic" {
		t.Errorf("String() = %q", RefInvokeStatic.String())
	}
}
