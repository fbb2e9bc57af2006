package mutf8

import "unsafe"

// Text is decoded modified UTF-8. It is either a view borrowed from the
// buffer it was decoded from, or a string owned by the Text itself.
//
// A borrowed Text is valid only as long as the source buffer is kept alive
// and left unmodified.
type Text struct {
	view  []byte
	owned string
	own   bool
}

// Borrowed wraps b, which must already be valid UTF-8.
func Borrowed(b []byte) Text {
	return Text{view: b}
}

// Owned wraps an allocated string.
func Owned(s string) Text {
	return Text{owned: s, own: true}
}

// IsBorrowed reports whether t shares memory with its source buffer.
func (t Text) IsBorrowed() bool { return !t.own }

// String returns the text. For a borrowed Text no copy is made.
func (t Text) String() string {
	if t.own {
		return t.owned
	}
	if len(t.view) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(t.view), len(t.view))
}

// Bytes returns the UTF-8 bytes of the text. The result must not be modified.
func (t Text) Bytes() []byte {
	if t.own {
		return []byte(t.owned)
	}
	return t.view
}
