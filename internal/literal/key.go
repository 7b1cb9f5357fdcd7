package literal

import (
	"strings"

	"quill/internal/textenc"
	"quill/internal/value"
)

// Key codes are encoded in strings as three-byte sequences introduced by
// keySpecial. Named keys carry a two-byte code; modifiers that survive
// simplification are emitted as a keySpecial+keyModifier prefix.
const (
	keySpecial  = 0x80
	keyModifier = 0xFC
)

// Modifier bits, as stored in the modifier prefix byte.
const (
	modShift = 0x02
	modCtrl  = 0x04
	modAlt   = 0x08
	modMeta  = 0x10
	modCmd   = 0x80
)

var modNames = map[byte]int{
	'S': modShift,
	'C': modCtrl,
	'M': modAlt,
	'A': modAlt,
	'T': modMeta,
	'D': modCmd,
}

// namedKey is either a plain character or a two-byte special code.
type namedKey struct {
	char rune
	code [2]byte
	wide bool
}

func charKey(r rune) namedKey { return namedKey{char: r} }

func specialKey(a, b byte) namedKey { return namedKey{code: [2]byte{a, b}, wide: true} }

var keyNames = map[string]namedKey{
	"nul":       charKey(0x0a), // NUL is stored as NL
	"bs":        specialKey('k', 'b'),
	"tab":       charKey('\t'),
	"nl":        charKey('\n'),
	"newline":   charKey('\n'),
	"linefeed":  charKey('\n'),
	"lf":        charKey('\n'),
	"cr":        charKey('\r'),
	"return":    charKey('\r'),
	"enter":     charKey('\r'),
	"esc":       charKey(0x1b),
	"space":     charKey(' '),
	"lt":        charKey('<'),
	"bar":       charKey('|'),
	"bslash":    charKey('\\'),
	"del":       specialKey('k', 'D'),
	"delete":    specialKey('k', 'D'),
	"up":        specialKey('k', 'u'),
	"down":      specialKey('k', 'd'),
	"left":      specialKey('k', 'l'),
	"right":     specialKey('k', 'r'),
	"home":      specialKey('k', 'h'),
	"end":       specialKey('@', '7'),
	"pageup":    specialKey('k', 'P'),
	"pagedown":  specialKey('k', 'N'),
	"insert":    specialKey('k', 'I'),
	"ins":       specialKey('k', 'I'),
	"help":      specialKey('%', '1'),
	"undo":      specialKey('&', '8'),
	"f1":        specialKey('k', '1'),
	"f2":        specialKey('k', '2'),
	"f3":        specialKey('k', '3'),
	"f4":        specialKey('k', '4'),
	"f5":        specialKey('k', '5'),
	"f6":        specialKey('k', '6'),
	"f7":        specialKey('k', '7'),
	"f8":        specialKey('k', '8'),
	"f9":        specialKey('k', '9'),
	"f10":       specialKey('k', ';'),
	"f11":       specialKey('F', '1'),
	"f12":       specialKey('F', '2'),
}

// transSpecialKey translates a "<...>" key name at src[pos] into its string
// encoding. It returns the encoded bytes and the position after the '>';
// when nothing matches the returned position equals pos.
func (pr *Parser) transSpecialKey(src string, pos int) ([]byte, int) {
	if pos >= len(src) || src[pos] != '<' {
		return nil, pos
	}
	end := strings.IndexByte(src[pos:], '>')
	if end < 0 {
		return nil, pos
	}
	end += pos
	body := src[pos+1 : end]
	if body == "" {
		return nil, pos
	}

	// Split off "Mod-" prefixes; the rest is the key proper.
	modifiers := 0
	for len(body) > 2 && body[1] == '-' {
		bit, ok := modNames[upperByte(body[0])]
		if !ok {
			return nil, pos
		}
		modifiers |= bit
		body = body[2:]
	}

	var key namedKey
	lower := strings.ToLower(body)
	switch {
	case len(body) > 5 && strings.HasPrefix(lower, "char-"):
		n, length, _ := value.StrToNum(body[5:], value.StrAll, false)
		if length != len(body)-5 {
			return nil, pos
		}
		key = charKey(rune(n))
	case len([]rune(body)) == 1:
		key = charKey([]rune(body)[0])
	default:
		var ok bool
		key, ok = keyNames[lower]
		if !ok {
			return nil, pos
		}
	}

	if !key.wide {
		key.char, modifiers = simplifyKey(key.char, modifiers)
	}

	var out []byte
	if modifiers != 0 {
		out = append(out, keySpecial, keyModifier, byte(modifiers))
	}
	if key.wide {
		out = append(out, keySpecial, key.code[0], key.code[1])
	} else {
		out = textenc.EncodeChar(out, key.char, pr.Encoding)
	}
	return out, end + 1
}

// simplifyKey folds Ctrl and Shift into the character where a plain byte
// expresses the combination, so "<C-a>" becomes 0x01 with no modifier
// prefix.
func simplifyKey(r rune, modifiers int) (rune, int) {
	if modifiers&modShift != 0 && r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
		modifiers &^= modShift
	}
	if modifiers&modCtrl != 0 {
		switch {
		case r >= 'a' && r <= 'z':
			r = r - 'a' + 1
			modifiers &^= modCtrl
		case r >= 'A' && r <= 'Z':
			r = r - 'A' + 1
			modifiers &^= modCtrl
		case r == '@':
			r, modifiers = 0, modifiers&^modCtrl
		case r >= '[' && r <= '_':
			r, modifiers = r-'@', modifiers&^modCtrl
		case r == '?':
			r, modifiers = 0x7f, modifiers&^modCtrl
		}
	}
	return r, modifiers
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
