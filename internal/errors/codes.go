package errors

// Error codes for the whilec toolchain
// These codes are used in error messages, LSP diagnostics and the
// compile history to identify failures consistently.
//
// Error code ranges:
// E0001-E0099: Validation errors (character set pre-check)
// E0100-E0199: Lexer errors
// E0200-E0299: Parser errors
// E0900-E0999: Reserved for tooling errors

const (
	// E0001: Source contains a character outside the language alphabet
	ErrorInvalidCharacterSet = "E0001"

	// E0100: No token rule matches at the cursor
	ErrorIllegalCharacter = "E0100"

	// E0200: A grammar rule found a token it does not accept
	ErrorUnexpectedToken = "E0200"

	// E0201: A grammar rule needed a token but the input ended
	ErrorUnexpectedEnd = "E0201"

	// E0202: The program is complete but tokens remain
	ErrorTrailingTokens = "E0202"

	// E0900: Source could not be read
	ErrorSourceUnreadable = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorInvalidCharacterSet:
		return "Source contains characters outside the language alphabet"
	case ErrorIllegalCharacter:
		return "No token rule matches the character"
	case ErrorUnexpectedToken:
		return "Token does not fit the grammar at this point"
	case ErrorUnexpectedEnd:
		return "Source ended before the construct was complete"
	case ErrorTrailingTokens:
		return "Tokens remain after the end of the program"
	case ErrorSourceUnreadable:
		return "Source could not be read"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Validation"
	case code >= "E0100" && code < "E0200":
		return "Lexer"
	case code >= "E0200" && code < "E0300":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
