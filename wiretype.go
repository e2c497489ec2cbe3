package compact

import "fmt"

// ThriftType enumerates the wire types carried by the compact protocol's
// 4-bit type nibbles.
type ThriftType uint8

const (
	TypeStop ThriftType = iota
	TypeVoid
	TypeBool
	TypeByte
	TypeInt16
	TypeInt32
	TypeInt64
	TypeDouble
	TypeString
	TypeList
	TypeSet
	TypeMap
	TypeStruct
)

func (t ThriftType) String() string {
	switch t {
	case TypeStop:
		return "stop"
	case TypeVoid:
		return "void"
	case TypeBool:
		return "bool"
	case TypeByte:
		return "byte"
	case TypeInt16:
		return "i16"
	case TypeInt32:
		return "i32"
	case TypeInt64:
		return "i64"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeMap:
		return "map"
	case TypeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// compact protocol type nibbles, in field-header order.
const (
	compactStop   = 0x00
	compactBoolT  = 0x01
	compactBoolF  = 0x02
	compactByte   = 0x03
	compactI16    = 0x04
	compactI32    = 0x05
	compactI64    = 0x06
	compactDouble = 0x07
	compactString = 0x08
	compactList   = 0x09
	compactSet    = 0x0A
	compactMap    = 0x0B
	compactStruct = 0x0C
)

// FromCompact maps a 4-bit compact type code to a ThriftType. The
// bool-true/bool-false codes (0x01/0x02) map to TypeVoid/TypeBool
// respectively; readValue recovers the boolean value from that type when
// the field appears outside a collection.
func FromCompact(nibble byte) (ThriftType, error) {
	switch nibble {
	case compactStop:
		return TypeStop, nil
	case compactBoolT:
		return TypeVoid, nil
	case compactBoolF:
		return TypeBool, nil
	case compactByte:
		return TypeByte, nil
	case compactI16:
		return TypeInt16, nil
	case compactI32:
		return TypeInt32, nil
	case compactI64:
		return TypeInt64, nil
	case compactDouble:
		return TypeDouble, nil
	case compactString:
		return TypeString, nil
	case compactList:
		return TypeList, nil
	case compactSet:
		return TypeSet, nil
	case compactMap:
		return TypeMap, nil
	case compactStruct:
		return TypeStruct, nil
	default:
		return TypeStop, &DecodeError{Kind: KindInvalidFieldType, Detail: fmt.Sprintf("nibble 0x%X out of range", nibble)}
	}
}

// ToCompact is the total reverse mapping of FromCompact, used by tooling
// rendering a tree back into wire type codes (the parser itself stores
// ThriftType values and does not call it). TypeVoid maps to the
// bool-true nibble since it only ever arises from that code.
func ToCompact(t ThriftType) byte {
	switch t {
	case TypeVoid:
		return compactBoolT
	case TypeBool:
		return compactBoolF
	case TypeByte:
		return compactByte
	case TypeInt16:
		return compactI16
	case TypeInt32:
		return compactI32
	case TypeInt64:
		return compactI64
	case TypeDouble:
		return compactDouble
	case TypeString:
		return compactString
	case TypeList:
		return compactList
	case TypeSet:
		return compactSet
	case TypeMap:
		return compactMap
	case TypeStruct:
		return compactStruct
	default:
		return compactStop
	}
}
