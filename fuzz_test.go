package compact

import (
	"bytes"
	"math"
	"testing"
)

// FuzzStructRoundtrip exercises the parser against structs built with the
// test-only builder, checking that each primitive decodes back to the value
// it was built from.
func FuzzStructRoundtrip(f *testing.F) {
	f.Add(int32(0), "hello", true)
	f.Add(int32(math.MinInt32), "", false)
	f.Add(int32(math.MaxInt32), "world", true)
	f.Add(int32(-1), string([]byte{0x00, 0xFF}), false)

	f.Fuzz(func(t *testing.T, i32 int32, str string, b bool) {
		boolNibble := byte(compactBoolF)
		if b {
			boolNibble = compactBoolT
		}

		data := newBuilder().
			fieldHeader(1, compactI32).zigzag32(i32).
			fieldHeader(1, compactString).str(str).
			fieldHeader(1, boolNibble).
			stop().
			bytes()

		s, err := ParseStruct(data)
		if err != nil {
			t.Fatalf("ParseStruct: %v", err)
		}

		gotI32, err := DecodeZigZagVarint([]byte(s.Fields[1].Object.(ThriftData)))
		if err != nil {
			t.Fatalf("decode i32: %v", err)
		}
		if int32(gotI32) != i32 {
			t.Fatalf("i32 mismatch: want %d, got %d", i32, gotI32)
		}

		gotStr := string(s.Fields[2].Object.(ThriftData))
		if gotStr != str {
			t.Fatalf("string mismatch: want %q, got %q", str, gotStr)
		}

		wantBool := []byte{0x00}
		if b {
			wantBool = []byte{0x01}
		}
		if !bytes.Equal([]byte(s.Fields[3].Object.(ThriftData)), wantBool) {
			t.Fatalf("bool mismatch: want %v, got %v", wantBool, s.Fields[3].Object)
		}
	})
}

// FuzzParseStructNeverPanics feeds arbitrary bytes through ParseStruct:
// the only acceptable outcomes are a decoded struct or a *DecodeError, and
// the cursor must never read past the input.
func FuzzParseStructNeverPanics(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x15, 0xAC, 0x02, 0x00})
	f.Add([]byte{0x11, 0x12, 0x00})
	f.Add([]byte{})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, err := ParseStruct(data)
		if err != nil {
			if _, ok := err.(*DecodeError); !ok {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
		}
	})
}
