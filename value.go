package compact

// ThriftObject is a closed sum type: the concrete payload of a decoded
// value. The variants are ThriftStop, ThriftData, *ThriftStruct,
// *ThriftKeyedCollection and *ThriftUnkeyedCollection. The unexported
// marker method seals the interface -- no type outside this package can
// implement it, matching the closed-world tree this decoder produces.
type ThriftObject interface {
	thriftObject()
}

// ThriftStop is the sentinel object emitted for a collection element whose
// compact type nibble was the bool-true/void code -- "no payload" -- which
// can only occur inside a collection (outside one, void is a struct field
// whose truth value is instead conveyed as ThriftData([]byte{0x01})).
type ThriftStop struct{}

func (ThriftStop) thriftObject() {}

// ThriftData is the opaque, decoded-but-uninterpreted byte payload for
// every primitive and string type. See parser.go for the exact byte-level
// form stored per ThriftType.
type ThriftData []byte

func (ThriftData) thriftObject() {}

// ThriftValue is one decoded struct field: the field index (absolute field
// ID), its wire type, and the decoded object. Collection elements are stored
// as bare ThriftObject values (or KeyValue pairs for maps), not ThriftValue.
type ThriftValue struct {
	Index  int16
	Type   ThriftType
	Object ThriftObject
}

// ThriftStruct is a decoded struct: the field ID it occupied in its parent
// (nil at the root), and its fields keyed by absolute field ID. fieldOrder
// remembers wire order so tooling that walks the tree for display
// reproduces the encoder's field order deterministically.
type ThriftStruct struct {
	Index      *int16
	Fields     map[int16]ThriftValue
	fieldOrder []int16
}

func (*ThriftStruct) thriftObject() {}

// OrderedFields returns this struct's fields in the order they were read
// off the wire.
func (s *ThriftStruct) OrderedFields() []ThriftValue {
	out := make([]ThriftValue, 0, len(s.fieldOrder))
	for _, id := range s.fieldOrder {
		out = append(out, s.Fields[id])
	}
	return out
}

// KeyValue is one entry of a decoded map.
type KeyValue struct {
	Key   ThriftObject
	Value ThriftObject
}

// ThriftKeyedCollection is a decoded map.
type ThriftKeyedCollection struct {
	Index       *int16
	Count       int
	KeyType     ThriftType
	ElementType ThriftType
	Entries     []KeyValue
}

func (*ThriftKeyedCollection) thriftObject() {}

// ThriftUnkeyedCollection is a decoded list or set. OuterType distinguishes
// the two (both TypeList and TypeSet are valid); ElementType is the wire
// type of each entry.
type ThriftUnkeyedCollection struct {
	Index       *int16
	OuterType   ThriftType
	Count       int
	ElementType ThriftType
	Entries     []ThriftObject
}

func (*ThriftUnkeyedCollection) thriftObject() {}
