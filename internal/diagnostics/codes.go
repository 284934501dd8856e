package diagnostics

// Diagnostic kind tags exposed to callers. Lexical and syntactic tags ride
// on fatal errors; the semantic tags accumulate in the bag.
const (
	// Lexer errors (fatal)
	ErrUnexpectedCharacter = "UnexpectedCharacter"
	ErrUnterminatedString  = "UnterminatedString"

	// Parser errors (fatal unless statement recovery is enabled)
	ErrUnterminatedBlock   = "UnterminatedBlock"
	ErrExpectedAssignment  = "ExpectedAssignment"
	ErrUnexpectedToken     = "UnexpectedToken"
	ErrExpectedToken       = "ExpectedToken"

	// Semantic errors (recoverable, accumulated)
	ErrRedeclaration       = "Redeclaration"
	ErrUndefinedVariable   = "UndefinedVariable"
	ErrUsedBeforeInit      = "UsedBeforeInit"
	ErrTypeMismatch        = "TypeMismatch"
	ErrConditionNotBoolean = "ConditionNotBoolean"
)
