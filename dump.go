package compact

import (
	"fmt"
	"strconv"
	"strings"
)

// The code in this file is not written with the same strict performance
// concerns as the rest of the parser. It exists to provide easy-to-read
// tree renderings for tooling such as the thriftdump command and for
// golden-output tests.

// Dump renders a decoded struct as an indented, human-readable tree. Field
// order matches the order fields were read off the wire.
func Dump(s *ThriftStruct) string {
	var b strings.Builder
	dumpStruct(&b, s, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpStruct(b *strings.Builder, s *ThriftStruct, depth int) {
	indent(b, depth)
	b.WriteString("struct {\n")
	for _, f := range s.OrderedFields() {
		indent(b, depth+1)
		fmt.Fprintf(b, "%d: %s = ", f.Index, f.Type)
		dumpObject(b, f.Object, depth+1)
		b.WriteString("\n")
	}
	indent(b, depth)
	b.WriteString("}")
}

func dumpObject(b *strings.Builder, obj ThriftObject, depth int) {
	switch v := obj.(type) {
	case ThriftStop:
		b.WriteString("<stop>")
	case ThriftData:
		b.WriteString(strconv.Quote(string(v)))
	case *ThriftStruct:
		b.WriteString("\n")
		dumpStruct(b, v, depth)
	case *ThriftKeyedCollection:
		fmt.Fprintf(b, "map<%s,%s>[%d] {\n", v.KeyType, v.ElementType, v.Count)
		for _, e := range v.Entries {
			indent(b, depth+1)
			dumpObject(b, e.Key, depth+1)
			b.WriteString(" => ")
			dumpObject(b, e.Value, depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	case *ThriftUnkeyedCollection:
		fmt.Fprintf(b, "%s<%s>[%d] {\n", v.OuterType, v.ElementType, v.Count)
		for _, e := range v.Entries {
			indent(b, depth+1)
			dumpObject(b, e, depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	default:
		b.WriteString("<nil>")
	}
}
