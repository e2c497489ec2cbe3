// Command thriftdump decodes a file containing one compact-protocol Thrift
// struct and prints the decoded value tree, either as an indented dump or
// as JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	json "github.com/segmentio/encoding/json"

	compact "github.com/willtemperley/ios-twitter-apache-thrift"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the decoded tree as JSON instead of an indented dump")
	maxDepth := flag.Int("max-depth", 0, "override the default max nesting depth (0 keeps the default)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: thriftdump [flags] <file>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "thriftdump: %v\n", err)
		os.Exit(1)
	}

	limits := compact.DefaultLimits()
	if *maxDepth > 0 {
		limits.MaxDepth = *maxDepth
	}

	root, err := compact.NewDecoder(limits).ParseStruct(data)
	if err != nil {
		if de, ok := err.(*compact.DecodeError); ok {
			fmt.Fprintf(os.Stderr, "thriftdump: decode failed at offset %d: %s\n", de.Offset, de.Kind)
		} else {
			fmt.Fprintf(os.Stderr, "thriftdump: %v\n", err)
		}
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toJSON(root)); err != nil {
			fmt.Fprintf(os.Stderr, "thriftdump: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printTable(root)
	fmt.Println()
	fmt.Println(compact.Dump(root))
}

// printTable renders the root struct's direct fields as a table: index,
// wire type, and a short preview of the decoded payload. Nested structure
// is left to the indented dump printed alongside it, since a flat table
// doesn't represent recursion well.
func printTable(root *compact.ThriftStruct) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Index", "Type", "Preview"})

	for _, f := range root.OrderedFields() {
		table.Append([]string{
			fmt.Sprintf("%d", f.Index),
			f.Type.String(),
			preview(f.Object),
		})
	}

	table.Render()
}

func preview(obj compact.ThriftObject) string {
	switch v := obj.(type) {
	case compact.ThriftData:
		if len(v) > 24 {
			return fmt.Sprintf("% x...", []byte(v)[:24])
		}
		return fmt.Sprintf("% x", []byte(v))
	case *compact.ThriftStruct:
		return fmt.Sprintf("struct{%d fields}", len(v.Fields))
	case *compact.ThriftKeyedCollection:
		return fmt.Sprintf("map[%d]", v.Count)
	case *compact.ThriftUnkeyedCollection:
		return fmt.Sprintf("%s[%d]", v.OuterType, v.Count)
	default:
		return "<stop>"
	}
}

// toJSON converts a decoded value tree into plain maps/slices suitable for
// JSON marshaling. Byte payloads are rendered as arrays of integers since
// their interpretation (zig-zag int, raw float bits, UTF-8 string) depends
// on schema knowledge this decoder intentionally doesn't have. Each type is
// rendered both as its name and, via compact.ToCompact, the wire nibble it
// decoded from -- useful for diffing against raw protocol captures.
func toJSON(obj compact.ThriftObject) interface{} {
	switch v := obj.(type) {
	case compact.ThriftStop:
		return nil
	case compact.ThriftData:
		ints := make([]int, len(v))
		for i, b := range v {
			ints[i] = int(b)
		}
		return ints
	case *compact.ThriftStruct:
		fields := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.OrderedFields() {
			fields[fmt.Sprintf("%d", f.Index)] = map[string]interface{}{
				"type":     f.Type.String(),
				"typeCode": compact.ToCompact(f.Type),
				"value":    toJSON(f.Object),
			}
		}
		return fields
	case *compact.ThriftKeyedCollection:
		entries := make([]map[string]interface{}, 0, len(v.Entries))
		for _, e := range v.Entries {
			entries = append(entries, map[string]interface{}{
				"key":   toJSON(e.Key),
				"value": toJSON(e.Value),
			})
		}
		return map[string]interface{}{
			"keyType":         v.KeyType.String(),
			"keyTypeCode":     compact.ToCompact(v.KeyType),
			"elementType":     v.ElementType.String(),
			"elementTypeCode": compact.ToCompact(v.ElementType),
			"entries":         entries,
		}
	case *compact.ThriftUnkeyedCollection:
		entries := make([]interface{}, 0, len(v.Entries))
		for _, e := range v.Entries {
			entries = append(entries, toJSON(e))
		}
		return map[string]interface{}{
			"outerType":       v.OuterType.String(),
			"outerTypeCode":   compact.ToCompact(v.OuterType),
			"elementType":     v.ElementType.String(),
			"elementTypeCode": compact.ToCompact(v.ElementType),
			"entries":         entries,
		}
	default:
		return nil
	}
}
