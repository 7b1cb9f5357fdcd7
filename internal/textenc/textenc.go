// Package textenc resolves the active text encoding used when string escapes
// produce characters rather than raw bytes.
package textenc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Default is the encoding assumed when none is configured.
const Default = "utf-8"

var charmaps = map[string]*charmap.Charmap{
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-15":  charmap.ISO8859_15,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
}

// Known reports whether name is a supported encoding name.
func Known(name string) bool {
	name = strings.ToLower(name)
	if name == "" || name == Default || name == "utf8" {
		return true
	}
	_, ok := charmaps[name]
	return ok
}

// EncodeChar appends the encoding of r under the named encoding to dst.
// Unknown names and characters outside the charmap fall back to UTF-8.
func EncodeChar(dst []byte, r rune, name string) []byte {
	if cm, ok := charmaps[strings.ToLower(name)]; ok {
		if b, ok := encodeByte(cm, r); ok {
			return append(dst, b)
		}
	}
	return utf8.AppendRune(dst, r)
}

func encodeByte(cm *charmap.Charmap, r rune) (byte, bool) {
	var enc encoding.Encoding = cm
	out := make([]byte, 4)
	n, _, err := enc.NewEncoder().Transform(out, []byte(string(r)), true)
	if err != nil || n != 1 {
		return 0, false
	}
	return out[0], true
}
