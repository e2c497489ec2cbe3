package compact

// DecodeLimits bounds the resources a single decode operation may consume,
// so a corrupt or adversarial buffer fails with a typed error instead of
// recursing without bound or allocating without bound. A zero value for any
// field except MaxDepth disables that particular cap.
type DecodeLimits struct {
	// MaxDepth bounds struct/collection nesting. Zero is treated as 1 (a
	// single top-level struct, no nesting) rather than "unlimited" --
	// unbounded recursion defeats the purpose of this field.
	MaxDepth int

	// MaxVarintBytes bounds the number of bytes, terminating byte
	// included, accepted in a single LEB128 run. Zero disables the cap.
	MaxVarintBytes int

	// MaxCollectionCount bounds the element count accepted from a
	// list/set/map header before entries are allocated. Zero disables
	// the cap.
	MaxCollectionCount int

	// MaxStringLen bounds the accepted length of a string/binary
	// payload. Zero disables the cap.
	MaxStringLen int

	// StrictBool rejects a collection-element bool payload byte that is
	// neither 0x00 nor 0x01 with KindInvalidBool, instead of treating any
	// nonzero byte as true.
	StrictBool bool
}

// DefaultLimits returns the limits applied by ParseStruct and ParseValue.
func DefaultLimits() DecodeLimits {
	return DecodeLimits{
		MaxDepth:           64,
		MaxVarintBytes:     10,
		MaxCollectionCount: 10_000_000,
		MaxStringLen:       64 << 20,
		StrictBool:         false,
	}
}

func (l DecodeLimits) maxDepth() int {
	if l.MaxDepth <= 0 {
		return 1
	}
	return l.MaxDepth
}

func (l DecodeLimits) checkDepth(offset, depth int) error {
	if depth > l.maxDepth() {
		return newDecodeError(offset, KindMaxDepthExceeded, "")
	}
	return nil
}

func (l DecodeLimits) checkVarintLen(offset, n int) error {
	if l.MaxVarintBytes > 0 && n > l.MaxVarintBytes {
		return newDecodeError(offset, KindMalformedVarint, "continuation run too long")
	}
	return nil
}

func (l DecodeLimits) checkCollectionCount(offset int, count int64) error {
	if count < 0 {
		return newDecodeError(offset, KindNegativeCollectionCount, "")
	}
	if l.MaxCollectionCount > 0 && count > int64(l.MaxCollectionCount) {
		return newDecodeError(offset, KindCollectionTooLarge, "")
	}
	return nil
}

func (l DecodeLimits) checkStringLen(offset int, n int64) error {
	if n < 0 {
		return newDecodeError(offset, KindNegativeCollectionCount, "negative string length")
	}
	if l.MaxStringLen > 0 && n > int64(l.MaxStringLen) {
		return newDecodeError(offset, KindStringTooLong, "")
	}
	return nil
}
