package bytecode

// Cursor is the absolute offset of the next instruction in a code array.
// Switch padding depends on it, so a decode session starts at Cursor{} and
// threads the returned cursor through every call.
type Cursor struct {
	Pos int
}

// Padding returns the number of bytes between a switch tag at c and the next
// 4-byte boundary of the code array.
func (c Cursor) Padding() int {
	return (4 - (c.Pos+1)%4) % 4
}

func (c Cursor) Advance(n int) Cursor {
	if n < 0 {
		panic("bytecode: cursor moved backwards")
	}
	return Cursor{Pos: c.Pos + n}
}
