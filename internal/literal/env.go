package literal

import (
	"os"

	"quill/internal/value"
)

// EnvVar parses "$NAME" at src[pos] and looks the name up in the process
// environment. An unset variable silently yields an empty string; an empty
// name is an error.
func (pr *Parser) EnvVar(src string, pos int, evaluate bool) (value.Value, int, error) {
	i := pos + 1
	start := i
	for i < len(src) && isEnvChar(src[i]) {
		i++
	}
	if !evaluate {
		return value.Value{}, i, nil
	}
	if i == start {
		return value.Value{}, pos, parseErrorf("invalid environment variable name: %s", src[pos:])
	}
	return value.NewString(os.Getenv(src[start:i])), i, nil
}

func isEnvChar(c byte) bool {
	return c == '_' || isDigit(c) || isAlpha(c)
}
