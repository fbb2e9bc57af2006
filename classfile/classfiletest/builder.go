// Package classfiletest assembles class files in memory for tests.
package classfiletest

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dhamidi/classkit/mutf8"
)

type Attribute struct {
	NameIndex uint16
	Payload   []byte
}

type member struct {
	access     uint16
	name, desc uint16
	attrs      []Attribute
}

// Builder interns pool entries as they are requested, so the same Utf8 or
// Class entry is only written once.
type Builder struct {
	Minor, Major uint16
	Access       uint16

	pool    []byte
	next    uint16
	interns map[string]uint16

	this, super uint16
	interfaces  []uint16
	fields      []member
	methods     []member
	attrs       []Attribute
}

// New starts a public class named name. An empty super leaves super_class 0.
func New(name, super string) *Builder {
	b := &Builder{
		Major:   52,
		Access:  0x0021,
		next:    1,
		interns: make(map[string]uint16),
	}
	b.this = b.Class(name)
	if super != "" {
		b.super = b.Class(super)
	}
	return b
}

// Raw appends a pre-encoded pool entry occupying slots slots.
func (b *Builder) Raw(entry []byte, slots int) uint16 {
	index := b.next
	b.pool = append(b.pool, entry...)
	b.next += uint16(slots)
	return index
}

func (b *Builder) intern(key string, slots int, encode func() []byte) uint16 {
	if index, ok := b.interns[key]; ok {
		return index
	}
	index := b.Raw(encode(), slots)
	b.interns[key] = index
	return index
}

func u2(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func (b *Builder) Utf8(s string) uint16 {
	return b.intern("utf8:"+s, 1, func() []byte {
		enc := mutf8.Encode(s)
		return append(append([]byte{1}, u2(uint16(len(enc)))...), enc...)
	})
}

func (b *Builder) Class(name string) uint16 {
	nameIndex := b.Utf8(name)
	return b.intern("class:"+name, 1, func() []byte {
		return append([]byte{7}, u2(nameIndex)...)
	})
}

func (b *Builder) String(s string) uint16 {
	index := b.Utf8(s)
	return b.intern("string:"+s, 1, func() []byte {
		return append([]byte{8}, u2(index)...)
	})
}

func (b *Builder) NameAndType(name, desc string) uint16 {
	n, d := b.Utf8(name), b.Utf8(desc)
	return b.intern("nat:"+name+":"+desc, 1, func() []byte {
		return append(append([]byte{12}, u2(n)...), u2(d)...)
	})
}

func (b *Builder) ref(tag byte, class, name, desc string) uint16 {
	c, nat := b.Class(class), b.NameAndType(name, desc)
	return b.intern(fmt.Sprintf("ref%d:%s.%s:%s", tag, class, name, desc), 1, func() []byte {
		return append(append([]byte{tag}, u2(c)...), u2(nat)...)
	})
}

func (b *Builder) Fieldref(class, name, desc string) uint16 {
	return b.ref(9, class, name, desc)
}

func (b *Builder) Methodref(class, name, desc string) uint16 {
	return b.ref(10, class, name, desc)
}

func (b *Builder) InterfaceMethodref(class, name, desc string) uint16 {
	return b.ref(11, class, name, desc)
}

func (b *Builder) Integer(v int32) uint16 {
	return b.Raw(binary.BigEndian.AppendUint32([]byte{3}, uint32(v)), 1)
}

func (b *Builder) Long(v int64) uint16 {
	return b.Raw(binary.BigEndian.AppendUint64([]byte{5}, uint64(v)), 2)
}

func (b *Builder) Double(v float64) uint16 {
	return b.Raw(binary.BigEndian.AppendUint64([]byte{6}, math.Float64bits(v)), 2)
}

func (b *Builder) Interface(name string) {
	b.interfaces = append(b.interfaces, b.Class(name))
}

func (b *Builder) Attribute(name string, payload []byte) Attribute {
	return Attribute{NameIndex: b.Utf8(name), Payload: payload}
}

// Code builds a Code attribute with an empty exception table.
func (b *Builder) Code(maxStack, maxLocals uint16, code []byte, attrs ...Attribute) Attribute {
	p := binary.BigEndian.AppendUint16(nil, maxStack)
	p = binary.BigEndian.AppendUint16(p, maxLocals)
	p = binary.BigEndian.AppendUint32(p, uint32(len(code)))
	p = append(p, code...)
	p = binary.BigEndian.AppendUint16(p, 0)
	p = appendAttributes(p, attrs)
	return b.Attribute("Code", p)
}

func (b *Builder) SourceFile(name string) {
	b.attrs = append(b.attrs, b.Attribute("SourceFile", u2(b.Utf8(name))))
}

func (b *Builder) ClassAttribute(a Attribute) {
	b.attrs = append(b.attrs, a)
}

func (b *Builder) Field(access uint16, name, desc string, attrs ...Attribute) {
	b.fields = append(b.fields, member{access, b.Utf8(name), b.Utf8(desc), attrs})
}

func (b *Builder) Method(access uint16, name, desc string, attrs ...Attribute) {
	b.methods = append(b.methods, member{access, b.Utf8(name), b.Utf8(desc), attrs})
}

func appendAttributes(p []byte, attrs []Attribute) []byte {
	p = binary.BigEndian.AppendUint16(p, uint16(len(attrs)))
	for _, a := range attrs {
		p = binary.BigEndian.AppendUint16(p, a.NameIndex)
		p = binary.BigEndian.AppendUint32(p, uint32(len(a.Payload)))
		p = append(p, a.Payload...)
	}
	return p
}

func appendMembers(p []byte, members []member) []byte {
	p = binary.BigEndian.AppendUint16(p, uint16(len(members)))
	for _, m := range members {
		p = binary.BigEndian.AppendUint16(p, m.access)
		p = binary.BigEndian.AppendUint16(p, m.name)
		p = binary.BigEndian.AppendUint16(p, m.desc)
		p = appendAttributes(p, m.attrs)
	}
	return p
}

func (b *Builder) Bytes() []byte {
	p := binary.BigEndian.AppendUint32(nil, 0xCAFEBABE)
	p = binary.BigEndian.AppendUint16(p, b.Minor)
	p = binary.BigEndian.AppendUint16(p, b.Major)
	p = binary.BigEndian.AppendUint16(p, b.next)
	p = append(p, b.pool...)
	p = binary.BigEndian.AppendUint16(p, b.Access)
	p = binary.BigEndian.AppendUint16(p, b.this)
	p = binary.BigEndian.AppendUint16(p, b.super)
	p = binary.BigEndian.AppendUint16(p, uint16(len(b.interfaces)))
	for _, i := range b.interfaces {
		p = binary.BigEndian.AppendUint16(p, i)
	}
	p = appendMembers(p, b.fields)
	p = appendMembers(p, b.methods)
	p = appendAttributes(p, b.attrs)
	return p
}
