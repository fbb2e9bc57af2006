package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/classkit/bytecode"
	"github.com/dhamidi/classkit/classfile"
)

// Disassemble writes the instruction listing of code. Pool operands are
// followed by the entry they resolve to; an operand that does not resolve is
// annotated with the error instead of failing the listing.
func Disassemble(w io.Writer, cp classfile.ConstantPool, code *classfile.CodeAttribute, opts ...bytecode.Option) error {
	insns, err := code.Instructions(opts...)
	if err != nil {
		return err
	}
	for i := range insns {
		in := &insns[i]
		line := "  " + in.String()
		if in.IsPoolOperand() {
			text, err := Resolve(cp, uint16(in.Index))
			if err != nil {
				text = "!" + err.Error()
			}
			line += " // " + text
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(code.ExceptionTable) > 0 {
		if _, err := fmt.Fprintln(w, "  exception table:"); err != nil {
			return err
		}
		for _, h := range code.ExceptionTable {
			catch := "any"
			if h.CatchType != 0 {
				if catch, err = cp.ClassName(h.CatchType); err != nil {
					catch = "!" + err.Error()
				}
			}
			if _, err := fmt.Fprintf(w, "    %d..%d -> %d %s\n", h.StartPC, h.EndPC, h.HandlerPC, catch); err != nil {
				return err
			}
		}
	}
	return nil
}

// DisassembleClass writes a header line and the listing for every method of
// class that has a body. When only is non-empty, other methods are skipped.
func DisassembleClass(w io.Writer, class *classfile.ClassFile, only string, opts ...bytecode.Option) error {
	cp := class.ConstantPool
	className, err := class.ClassName()
	if err != nil {
		return err
	}
	for i := range class.Methods {
		m := &class.Methods[i]
		name, desc, err := m.NameAndDescriptor(cp)
		if err != nil {
			return fmt.Errorf("%s: method %d: %w", className, i, err)
		}
		if only != "" && name != only {
			continue
		}
		code, err := m.Code(cp)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", className, name, err)
		}
		if code == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s.%s%s [%s] stack=%d locals=%d\n",
			className, name, desc,
			classfile.MethodFlags.Format(m.AccessFlags),
			code.MaxStack, code.MaxLocals); err != nil {
			return err
		}
		if err := Disassemble(w, cp, code, opts...); err != nil {
			return fmt.Errorf("%s.%s: %w", className, name, err)
		}
	}
	return nil
}
