package format

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dhamidi/classkit/classfile"
)

// Resolve renders the pool entry at index the way an instruction operand
// refers to it: a class name, a quoted string, a member reference or a
// literal value.
func Resolve(cp classfile.ConstantPool, index uint16) (string, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return "", err
	}
	switch e := entry.(type) {
	case *classfile.ConstantUtf8Info:
		return e.String(), nil
	case *classfile.ConstantIntegerInfo:
		return strconv.FormatInt(int64(e.Value), 10), nil
	case *classfile.ConstantFloatInfo:
		return strconv.FormatFloat(float64(e.Value), 'g', -1, 32) + "f", nil
	case *classfile.ConstantLongInfo:
		return strconv.FormatInt(e.Value, 10) + "l", nil
	case *classfile.ConstantDoubleInfo:
		return strconv.FormatFloat(e.Value, 'g', -1, 64) + "d", nil
	case *classfile.ConstantClassInfo:
		return cp.ClassName(index)
	case *classfile.ConstantStringInfo:
		s, err := cp.String(index)
		if err != nil {
			return "", err
		}
		return strconv.Quote(s), nil
	case *classfile.ConstantFieldrefInfo, *classfile.ConstantMethodrefInfo, *classfile.ConstantInterfaceMethodrefInfo:
		ref, err := cp.MemberRef(index)
		if err != nil {
			return "", err
		}
		return ref.String(), nil
	case *classfile.ConstantNameAndTypeInfo:
		name, desc, err := cp.NameAndType(index)
		if err != nil {
			return "", err
		}
		return name + ":" + desc, nil
	case *classfile.ConstantMethodHandleInfo:
		target, err := Resolve(cp, e.ReferenceIndex)
		if err != nil {
			return "", err
		}
		return e.ReferenceKind.String() + " " + target, nil
	case *classfile.ConstantMethodTypeInfo:
		return cp.MethodType(index)
	case *classfile.ConstantDynamicInfo:
		name, desc, err := cp.NameAndType(e.NameAndTypeIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#%d:%s:%s", e.BootstrapMethodAttrIndex, name, desc), nil
	case *classfile.ConstantInvokeDynamicInfo:
		name, desc, err := cp.NameAndType(e.NameAndTypeIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#%d:%s:%s", e.BootstrapMethodAttrIndex, name, desc), nil
	case *classfile.ConstantModuleInfo:
		return cp.ModuleName(index)
	case *classfile.ConstantPackageInfo:
		return cp.PackageName(index)
	}
	return "", fmt.Errorf("%w: index %d is %s", classfile.ErrPoolEntryKindMismatch, index, entry.Tag())
}

func operands(entry classfile.ConstantPoolEntry) string {
	switch e := entry.(type) {
	case *classfile.ConstantClassInfo:
		return fmt.Sprintf("#%d", e.NameIndex)
	case *classfile.ConstantStringInfo:
		return fmt.Sprintf("#%d", e.StringIndex)
	case *classfile.ConstantFieldrefInfo:
		return fmt.Sprintf("#%d.#%d", e.ClassIndex, e.NameAndTypeIndex)
	case *classfile.ConstantMethodrefInfo:
		return fmt.Sprintf("#%d.#%d", e.ClassIndex, e.NameAndTypeIndex)
	case *classfile.ConstantInterfaceMethodrefInfo:
		return fmt.Sprintf("#%d.#%d", e.ClassIndex, e.NameAndTypeIndex)
	case *classfile.ConstantNameAndTypeInfo:
		return fmt.Sprintf("#%d:#%d", e.NameIndex, e.DescriptorIndex)
	case *classfile.ConstantMethodHandleInfo:
		return fmt.Sprintf("%d:#%d", e.ReferenceKind, e.ReferenceIndex)
	case *classfile.ConstantMethodTypeInfo:
		return fmt.Sprintf("#%d", e.DescriptorIndex)
	case *classfile.ConstantDynamicInfo:
		return fmt.Sprintf("#%d:#%d", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex)
	case *classfile.ConstantInvokeDynamicInfo:
		return fmt.Sprintf("#%d:#%d", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex)
	case *classfile.ConstantModuleInfo:
		return fmt.Sprintf("#%d", e.NameIndex)
	case *classfile.ConstantPackageInfo:
		return fmt.Sprintf("#%d", e.NameIndex)
	}
	return ""
}

// WritePool lists every pool entry, one per line. The second slot of a Long
// or Double is skipped. An entry whose references cannot be resolved is
// listed with its raw operands and the resolution error.
func WritePool(w io.Writer, cp classfile.ConstantPool) error {
	for i, entry := range cp {
		if _, ok := entry.(*classfile.ConstantPlaceholder); ok {
			continue
		}
		index := uint16(i + 1)
		var err error
		if ops := operands(entry); ops != "" {
			text, rerr := Resolve(cp, index)
			if rerr != nil {
				text = "!" + rerr.Error()
			}
			_, err = fmt.Fprintf(w, "%5s = %-18s %-15s // %s\n", fmt.Sprintf("#%d", index), entry.Tag(), ops, text)
		} else {
			text, _ := Resolve(cp, index)
			_, err = fmt.Fprintf(w, "%5s = %-18s %s\n", fmt.Sprintf("#%d", index), entry.Tag(), text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
