package value

// Kind identifies the variant stored in a Value. The zero value is Unknown so
// that a zeroed Value is in the unset state.
type Kind uint8

const (
	Unknown Kind = iota
	Any
	Void
	Bool
	Special
	Number
	Float
	String
	Funcref
	List
	Dict
	Blob
	Job
	Channel
	Class
	Object
	TypeAlias
)

var kindNames = [...]string{
	Unknown:   "unknown",
	Any:       "any",
	Void:      "void",
	Bool:      "bool",
	Special:   "special",
	Number:    "number",
	Float:     "float",
	String:    "string",
	Funcref:   "funcref",
	List:      "list",
	Dict:      "dict",
	Blob:      "blob",
	Job:       "job",
	Channel:   "channel",
	Class:     "class",
	Object:    "object",
	TypeAlias: "typealias",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Sentinel payloads for the Bool and Special kinds, kept in Value.N.
const (
	ValFalse int64 = 0
	ValTrue  int64 = 1
	ValNone  int64 = 2
	ValNull  int64 = 3
)

// SpecialName returns the textual form of a Bool/Special payload.
func SpecialName(n int64) string {
	switch n {
	case ValTrue:
		return "true"
	case ValNone:
		return "none"
	case ValNull:
		return "null"
	}
	return "false"
}
