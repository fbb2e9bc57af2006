package callgraph

import (
	"fmt"
	"strings"

	"github.com/dhamidi/classkit/bytecode"
	"github.com/dhamidi/classkit/classfile"
	"github.com/zboralski/lattice"
)

// Call is one invoke instruction with its target resolved through the pool.
type Call struct {
	PC     int
	Opcode bytecode.Opcode
	Target classfile.MemberRef
}

var libraryPrefixes = []string{"java/", "javax/", "jdk/", "sun/"}

// IsLibraryClass reports whether an internal class name belongs to the JDK.
func IsLibraryClass(name string) bool {
	for _, prefix := range libraryPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (c Call) IsLibrary() bool {
	return IsLibraryClass(c.Target.Class)
}

func (c Call) Callee() string {
	return NodeName(c.Target.Class, c.Target.Name)
}

func NodeName(class, method string) string {
	return class + "." + method
}

func isInvoke(op bytecode.Opcode) bool {
	switch op {
	case bytecode.Invokevirtual, bytecode.Invokespecial, bytecode.Invokestatic, bytecode.Invokeinterface:
		return true
	}
	return false
}

// MethodCalls decodes code and resolves every invokevirtual, invokespecial,
// invokestatic and invokeinterface operand against cp.
func MethodCalls(cp classfile.ConstantPool, code *classfile.CodeAttribute, opts ...bytecode.Option) ([]Call, error) {
	insns, err := code.Instructions(opts...)
	if err != nil {
		return nil, err
	}
	var calls []Call
	for _, in := range insns {
		if !isInvoke(in.Opcode) {
			continue
		}
		ref, err := cp.MemberRef(uint16(in.Index))
		if err != nil {
			return nil, fmt.Errorf("pc %d: %s: %w", in.PC, in.Opcode, err)
		}
		calls = append(calls, Call{PC: in.PC, Opcode: in.Opcode, Target: ref})
	}
	return calls, nil
}

// Build returns the call graph of classes. Every method with a body is a
// node; callees outside classes appear only as edge endpoints.
func Build(classes []*classfile.ClassFile, opts ...bytecode.Option) (*lattice.Graph, error) {
	g := &lattice.Graph{}
	for _, cf := range classes {
		className, err := cf.ClassName()
		if err != nil {
			return nil, err
		}
		for i := range cf.Methods {
			m := &cf.Methods[i]
			name, _, err := m.NameAndDescriptor(cf.ConstantPool)
			if err != nil {
				return nil, fmt.Errorf("%s: method %d: %w", className, i, err)
			}
			code, err := m.Code(cf.ConstantPool)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", className, name, err)
			}
			if code == nil {
				continue
			}
			caller := NodeName(className, name)
			g.Nodes = append(g.Nodes, caller)

			calls, err := MethodCalls(cf.ConstantPool, code, opts...)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", caller, err)
			}
			for _, c := range calls {
				g.Edges = append(g.Edges, lattice.Edge{
					Caller: caller,
					Callee: c.Callee(),
				})
			}
		}
	}
	g.Dedup()
	return g, nil
}

// DropLibrary returns a copy of g without JDK nodes and without edges into
// JDK classes.
func DropLibrary(g *lattice.Graph) *lattice.Graph {
	out := &lattice.Graph{}
	for _, n := range g.Nodes {
		if !IsLibraryClass(n) {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if !IsLibraryClass(e.Callee) {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
