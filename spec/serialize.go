package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// writeCanonicalString writes name to buf as a single-quoted normalized
// path string, per [RFC 9535 Section 2.7]: JSON-escape name with double
// quotes, strip the surrounding quotes, unescape \" back to ", escape bare
// ' as \', and wrap the result in single quotes.
//
// [RFC 9535 Section 2.7]: https://www.rfc-editor.org/rfc/rfc9535#section-2.7
func writeCanonicalString(buf *strings.Builder, name string) {
	buf.WriteString("['")
	for _, r := range name {
		switch r {
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\'':
			buf.WriteString(`\'`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteString("']")
}

// writeIndexComponent writes i to buf as a normalized path index component.
func writeIndexComponent(buf *strings.Builder, i int) {
	buf.WriteByte('[')
	buf.WriteString(strconv.FormatInt(int64(i), 10))
	buf.WriteByte(']')
}
