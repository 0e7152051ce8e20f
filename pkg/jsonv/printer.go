package jsonv

import (
	"strconv"
	"strings"
)

// Print renders v as JSON text. Output is stable for primitives
// (null, true/false, locale-independent default double formatting,
// strings wrapped in double quotes with no escaping) and round-trips
// through Parse, though object member order is not guaranteed stable
// across processes.
func Print(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(strconv.FormatFloat(v.number, 'g', -1, 64))
	case KindString:
		b.WriteByte('"')
		b.WriteString(v.str)
		b.WriteByte('"')
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(m.key)
			b.WriteString("\": ")
			writeValue(b, m.value)
		}
		b.WriteByte('}')
	}
}
