package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"github.com/dhamidi/classkit/bytecode"
	"github.com/dhamidi/classkit/classfile"
	"github.com/dhamidi/classkit/classfile/classfiletest"
)

func u2(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func code(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func parse(t *testing.T, b *classfiletest.Builder) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Parse(b.Bytes())
	require.NoError(t, err)
	return cf
}

// greeter calls Printer.print and java/util/List.size; Printer.print calls
// nothing but has a body.
func fixtures(t *testing.T) []*classfile.ClassFile {
	t.Helper()

	g := classfiletest.New("app/Greeter", "java/lang/Object")
	ctor := g.Methodref("java/lang/Object", "<init>", "()V")
	printRef := g.Methodref("app/Printer", "print", "(Ljava/lang/String;)V")
	size := g.InterfaceMethodref("java/util/List", "size", "()I")
	hello := g.String("hello")
	g.Method(0x0001, "<init>", "()V", g.Code(1, 1, code(
		[]byte{0x2a},
		append([]byte{0xb7}, u2(ctor)...),
		[]byte{0xb1},
	)))
	g.Method(0x0009, "greet", "(Ljava/util/List;)V", g.Code(2, 1, code(
		[]byte{0x12, byte(hello)},
		append([]byte{0xb8}, u2(printRef)...),
		[]byte{0x2a},
		append(append([]byte{0xb9}, u2(size)...), 1, 0),
		[]byte{0x57, 0xb1},
	)))
	g.Method(0x0401, "abstractish", "()V")

	p := classfiletest.New("app/Printer", "java/lang/Object")
	p.Method(0x0009, "print", "(Ljava/lang/String;)V", p.Code(0, 1, []byte{0xb1}))

	return []*classfile.ClassFile{parse(t, g), parse(t, p)}
}

func TestMethodCalls(t *testing.T) {
	classes := fixtures(t)
	cf := classes[0]
	m := cf.GetMethod("greet", "")
	require.NotNil(t, m)
	attr, err := m.Code(cf.ConstantPool)
	require.NoError(t, err)
	require.NotNil(t, attr)

	calls, err := MethodCalls(cf.ConstantPool, attr)
	require.NoError(t, err)
	require.Len(t, calls, 2)

	assert.Equal(t, 2, calls[0].PC)
	assert.Equal(t, bytecode.Invokestatic, calls[0].Opcode)
	assert.Equal(t, "app/Printer", calls[0].Target.Class)
	assert.Equal(t, "app/Printer.print", calls[0].Callee())
	assert.False(t, calls[0].IsLibrary())

	assert.Equal(t, 6, calls[1].PC)
	assert.Equal(t, bytecode.Invokeinterface, calls[1].Opcode)
	assert.Equal(t, classfile.ConstantInterfaceMethodref, calls[1].Target.Kind)
	assert.True(t, calls[1].IsLibrary())
}

func TestMethodCallsBadOperand(t *testing.T) {
	b := classfiletest.New("Foo", "")
	cf := parse(t, b)
	// invokestatic #1 points at a Utf8 entry.
	attr := &classfile.CodeAttribute{Code: []byte{0xb8, 0x00, 0x01}}
	_, err := MethodCalls(cf.ConstantPool, attr)
	assert.ErrorIs(t, err, classfile.ErrPoolEntryKindMismatch)
}

func TestMethodCallsTruncatedCode(t *testing.T) {
	b := classfiletest.New("Foo", "")
	cf := parse(t, b)
	// A body cut off inside an invoke decodes to the complete prefix.
	attr := &classfile.CodeAttribute{Code: []byte{0x2a, 0xb8, 0x00}}
	calls, err := MethodCalls(cf.ConstantPool, attr)
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestBuild(t *testing.T) {
	g, err := Build(fixtures(t))
	require.NoError(t, err)

	assert.Contains(t, g.Nodes, "app/Greeter.<init>")
	assert.Contains(t, g.Nodes, "app/Greeter.greet")
	assert.Contains(t, g.Nodes, "app/Printer.print")
	assert.NotContains(t, g.Nodes, "app/Greeter.abstractish")

	assert.Contains(t, g.Edges, lattice.Edge{Caller: "app/Greeter.<init>", Callee: "java/lang/Object.<init>"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "app/Greeter.greet", Callee: "app/Printer.print"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "app/Greeter.greet", Callee: "java/util/List.size"})
	assert.Len(t, g.Edges, 3)

	dot := render.DOT(g, "classes")
	assert.NotEmpty(t, dot)
	assert.Contains(t, dot, "greet")
}

func TestBuildEmpty(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)
}

func TestDropLibrary(t *testing.T) {
	g, err := Build(fixtures(t))
	require.NoError(t, err)

	pruned := DropLibrary(g)
	assert.Equal(t, []lattice.Edge{{Caller: "app/Greeter.greet", Callee: "app/Printer.print"}}, pruned.Edges)
	for _, n := range pruned.Nodes {
		assert.False(t, IsLibraryClass(n), n)
	}
	assert.Len(t, g.Edges, 3, "input graph is not modified")
}

func TestIsLibraryClass(t *testing.T) {
	assert.True(t, IsLibraryClass("java/lang/Object"))
	assert.True(t, IsLibraryClass("jdk/internal/misc/Unsafe"))
	assert.False(t, IsLibraryClass("javafx/Node"))
	assert.False(t, IsLibraryClass("app/Main"))
}
