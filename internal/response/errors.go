package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"

	// ─── Problem generation ────────────────────────────────────────────
	ErrGenerationParse       ErrCode = "GENERATION_PARSE_ERROR"
	ErrGenerationInvalid     ErrCode = "GENERATION_INVALID"
	ErrGenerationUnavailable ErrCode = "GENERATION_UNAVAILABLE"

	// ─── Grading ───────────────────────────────────────────────────────
	ErrFeedbackGeneration ErrCode = "FEEDBACK_GENERATION_ERROR"

	// ─── Server ────────────────────────────────────────────────────────
	ErrConfiguration ErrCode = "CONFIGURATION_ERROR"
	ErrPersistence   ErrCode = "PERSISTENCE_ERROR"
	ErrInternal      ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Request payload is not valid JSON."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrSessionNotFound:
		return "Session not found."

	// ─── Problem generation ────────────────────────────────────────────
	case ErrGenerationParse:
		return "Failed to parse AI response."
	case ErrGenerationInvalid:
		return "Invalid problem data from AI."
	case ErrGenerationUnavailable:
		return "The problem generator is unavailable. Please try again."

	// ─── Grading ───────────────────────────────────────────────────────
	case ErrFeedbackGeneration:
		return "Failed to generate feedback. Please try again."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrConfiguration:
		return "AI provider is not configured."
	case ErrPersistence:
		return "Failed to save or load data."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
