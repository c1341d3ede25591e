package format

// Wire-format sizes and limits for the serialized block form.
const (
	// TokenLenSize is the size of the token length prefix.
	TokenLenSize = 2

	// StateSize is the size of the serialized state flags field.
	StateSize = 4

	// CountSize is the size of the serialized element count field.
	CountSize = 8

	// HeaderMinSize is the smallest possible serialized block: an empty
	// untyped block (zero token length, state, zero count).
	HeaderMinSize = TokenLenSize + StateSize + CountSize

	// MaxTokenLen is the largest representable type token, bounded by the
	// u16 length prefix.
	MaxTokenLen = 0xFFFF

	// StrLenSize is the size of the length prefix on serialized text and
	// byte-string elements.
	StrLenSize = 4

	// MaxStrLen is the largest representable text or byte-string element.
	MaxStrLen = 0x7FFFFFFF
)
