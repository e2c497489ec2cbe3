// Package compact implements a read-only decoder for the Apache Thrift
// compact binary protocol. It parses a flat byte buffer into a generic,
// self-describing value tree (ThriftStruct / ThriftObject) without requiring
// the caller's schema up front, since the compact encoding carries type tags
// inline. Encoding, schema-bound typed decoding, and the non-compact binary
// protocol variant are out of scope -- see DESIGN.md.
package compact

// Decoder parses compact-protocol byte buffers using a configured set of
// DecodeLimits. A Decoder holds no per-call state -- DecodeLimits is a
// plain value -- so a single Decoder is safe to use concurrently from
// multiple goroutines, the same way this codebase documents and tests
// concurrent reuse of its stateless decoders.
type Decoder struct {
	limits DecodeLimits
}

// NewDecoder returns a Decoder configured with the given limits.
func NewDecoder(limits DecodeLimits) *Decoder {
	return &Decoder{limits: limits}
}

// ParseStruct decodes data as a single top-level compact-protocol struct
// using default limits.
func ParseStruct(data []byte) (*ThriftStruct, error) {
	return NewDecoder(DefaultLimits()).ParseStruct(data)
}

// ParseValue decodes data as a single value of the given type using
// default limits.
func ParseValue(data []byte, expected ThriftType) (ThriftObject, error) {
	return NewDecoder(DefaultLimits()).ParseValue(data, expected)
}

// ParseStruct decodes data as a single top-level compact-protocol struct.
func (d *Decoder) ParseStruct(data []byte) (*ThriftStruct, error) {
	c := NewCursor(data)
	return readStruct(c, d.limits, nil, 1)
}

// ParseValue decodes data as a single value of the given type.
func (d *Decoder) ParseValue(data []byte, expected ThriftType) (ThriftObject, error) {
	c := NewCursor(data)
	return readValue(c, d.limits, nil, expected, false, 1)
}

// readStruct implements the struct state machine of 4.4.1: repeatedly read
// a field header, decoding its value until a stop byte is reached.
func readStruct(c *Cursor, limits DecodeLimits, index *int16, depth int) (*ThriftStruct, error) {
	if err := limits.checkDepth(c.Offset(), depth); err != nil {
		return nil, err
	}

	s := &ThriftStruct{Index: index, Fields: make(map[int16]ThriftValue)}
	var previousID int16

	for {
		isStop, fieldType, fieldID, err := readFieldHeader(c, previousID)
		if err != nil {
			return nil, err
		}
		if isStop {
			return s, nil
		}

		idCopy := fieldID
		obj, err := readValue(c, limits, &idCopy, fieldType, false, depth+1)
		if err != nil {
			return nil, err
		}

		s.Fields[fieldID] = ThriftValue{Index: fieldID, Type: fieldType, Object: obj}
		s.fieldOrder = append(s.fieldOrder, fieldID)
		previousID = fieldID
	}
}

// readFieldHeader implements 4.4.1's field header decoding: a zero byte is
// the struct terminator; otherwise the high nibble is either a field-ID
// delta from previousID, or (when zero) an escape to a raw two-byte
// big-endian field ID, zig-zag decoded as a signed 16-bit value. This
// big-endian-then-zigzag form matches the reference implementation this
// parser is grounded on rather than the standards-compliant zigzag-LEB128
// encoding -- see DESIGN.md for the divergence.
func readFieldHeader(c *Cursor, previousID int16) (isStop bool, fieldType ThriftType, fieldID int16, err error) {
	h, err := c.ReadByte()
	if err != nil {
		return false, 0, 0, err
	}
	if h == 0 {
		return true, TypeStop, 0, nil
	}

	delta := (h >> 4) & 0x0F
	tcode := h & 0x0F
	t, err := FromCompact(tcode)
	if err != nil {
		return false, 0, 0, withOffset(err, c.Offset()-1)
	}

	if delta == 0 {
		raw, err := c.ReadUint16BE()
		if err != nil {
			return false, 0, 0, err
		}
		return false, t, zigzag16(raw), nil
	}

	return false, t, previousID + int16(delta), nil
}

func zigzag16(raw uint16) int16 {
	return int16(raw>>1) ^ -int16(raw&1)
}

// readValue implements 4.4.2's per-type value decoding.
func readValue(c *Cursor, limits DecodeLimits, index *int16, t ThriftType, inCollection bool, depth int) (ThriftObject, error) {
	switch t {
	case TypeStop:
		return ThriftStop{}, nil

	case TypeVoid:
		if inCollection {
			return ThriftStop{}, nil
		}
		return ThriftData([]byte{0x01}), nil

	case TypeBool:
		if !inCollection {
			return ThriftData([]byte{0x00}), nil
		}
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		if limits.StrictBool && b != 0x00 && b != 0x01 {
			return nil, newDecodeError(c.Offset()-1, KindInvalidBool, "")
		}
		return ThriftData([]byte{b}), nil

	case TypeByte:
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		return ThriftData([]byte{b}), nil

	case TypeDouble:
		b, err := c.ReadBytes(8)
		if err != nil {
			return nil, err
		}
		return ThriftData(b), nil

	case TypeInt16, TypeInt32, TypeInt64:
		raw, err := readVarintRaw(c, limits)
		if err != nil {
			return nil, err
		}
		return ThriftData(raw), nil

	case TypeString:
		start := c.Offset()
		n, err := readVarint(c, limits)
		if err != nil {
			return nil, err
		}
		if err := limits.checkStringLen(start, int64(n)); err != nil {
			return nil, err
		}
		b, err := c.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		return ThriftData(b), nil

	case TypeStruct:
		return readStruct(c, limits, index, depth)

	case TypeMap:
		return readMap(c, limits, index, depth)

	case TypeList, TypeSet:
		return readListOrSet(c, limits, index, t, depth)

	default:
		return ThriftStop{}, nil
	}
}

// readMap implements 4.4.3.
func readMap(c *Cursor, limits DecodeLimits, index *int16, depth int) (*ThriftKeyedCollection, error) {
	if err := limits.checkDepth(c.Offset(), depth); err != nil {
		return nil, err
	}

	start := c.Offset()
	h, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return &ThriftKeyedCollection{Index: index, KeyType: TypeStop, ElementType: TypeStop}, nil
	}

	count, err := readVarintSeeded(c, limits, h)
	if err != nil {
		return nil, err
	}
	if err := limits.checkCollectionCount(start, int64(count)); err != nil {
		return nil, err
	}

	kvOffset := c.Offset()
	kv, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	keyType, err := FromCompact(kv >> 4)
	if err != nil {
		return nil, withOffset(err, kvOffset)
	}
	elemType, err := FromCompact(kv & 0x0F)
	if err != nil {
		return nil, withOffset(err, kvOffset)
	}

	entries := make([]KeyValue, 0, count)
	for i := uint64(0); i < count; i++ {
		key, err := readValue(c, limits, nil, keyType, true, depth+1)
		if err != nil {
			return nil, err
		}
		val, err := readValue(c, limits, nil, elemType, true, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, KeyValue{Key: key, Value: val})
	}

	return &ThriftKeyedCollection{
		Index:       index,
		Count:       int(count),
		KeyType:     keyType,
		ElementType: elemType,
		Entries:     entries,
	}, nil
}

// readListOrSet implements 4.4.4. outerType is TypeList or TypeSet.
func readListOrSet(c *Cursor, limits DecodeLimits, index *int16, outerType ThriftType, depth int) (*ThriftUnkeyedCollection, error) {
	if err := limits.checkDepth(c.Offset(), depth); err != nil {
		return nil, err
	}

	start := c.Offset()
	h, err := c.ReadByte()
	if err != nil {
		return nil, err
	}

	shortCount := (h >> 4) & 0x0F
	elemType, err := FromCompact(h & 0x0F)
	if err != nil {
		return nil, withOffset(err, start)
	}

	var count uint64
	if shortCount == 0x0F {
		count, err = readVarint(c, limits)
		if err != nil {
			return nil, err
		}
	} else {
		count = uint64(shortCount)
	}
	if err := limits.checkCollectionCount(start, int64(count)); err != nil {
		return nil, err
	}

	entries := make([]ThriftObject, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := readValue(c, limits, nil, elemType, true, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, v)
	}

	return &ThriftUnkeyedCollection{
		Index:       index,
		OuterType:   outerType,
		Count:       int(count),
		ElementType: elemType,
		Entries:     entries,
	}, nil
}
