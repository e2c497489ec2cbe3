package compact

import (
	"bytes"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

// Cursor is a read-only, position-tracking view over a contiguous byte
// region. It never returns fewer bytes than requested: a read that would
// exceed the remaining bytes fails with KindBufferOverflow instead of
// returning a short read. Cursor never panics on overrun and trusts
// nothing -- its entire purpose is validating untrusted input.
//
// Primitive reads are delegated to a kaitai.Stream, the same bounds-checked
// binary stream primitive used elsewhere in this retrieval pack to drive a
// generated Thrift compact-protocol parser, rather than hand-rolled slice
// index arithmetic.
type Cursor struct {
	stream *kaitai.Stream
	size   int
}

// NewCursor wraps a byte slice for sequential reading from offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{
		stream: kaitai.NewStream(bytes.NewReader(data)),
		size:   len(data),
	}
}

func (c *Cursor) wrap(err error, kind ErrorKind) error {
	if err == nil {
		return nil
	}
	return newDecodeError(c.Offset(), kind, err.Error())
}

// ReadByte consumes and returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.stream.ReadU1()
	if err != nil {
		return 0, c.wrap(err, KindBufferOverflow)
	}
	return b, nil
}

// ReadBytes consumes and returns the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, newDecodeError(c.Offset(), KindBufferOverflow, "negative length")
	}
	b, err := c.stream.ReadBytes(n)
	if err != nil {
		return nil, c.wrap(err, KindBufferOverflow)
	}
	return b, nil
}

// ReadUint16BE reads two bytes and composes them big-endian. Used only for
// the field-header 16-bit field-ID escape (see readFieldHeader), which
// preserves the reference implementation's raw big-endian-then-zigzag
// behavior rather than the standards-compliant zigzag-LEB128 encoding.
func (c *Cursor) ReadUint16BE() (uint16, error) {
	b, err := c.stream.ReadU2be()
	if err != nil {
		return 0, c.wrap(err, KindBufferOverflow)
	}
	return b, nil
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	pos, err := c.stream.Pos()
	if err != nil {
		return c.size
	}
	return int(pos)
}

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int {
	return c.size - c.Offset()
}
