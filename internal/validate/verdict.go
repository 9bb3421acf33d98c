package validate

// Code is a machine-readable violation code.
type Code string

const (
	CodeUnknownSlot          Code = "UnknownSlot"
	CodeSizeExceeded         Code = "SizeExceeded"
	CodeFormatMismatch       Code = "FormatMismatch"
	CodeDimensionMismatch    Code = "DimensionMismatch"
	CodeTransparencyMismatch Code = "TransparencyMismatch"
	CodeMarginViolation      Code = "MarginViolation"
	CodeCorrupt              Code = "CorruptError"
	CodeUnsafeContent        Code = "UnsafeContentError"
)

// Violation is one failed rule. Violations are data, never errors: a rejected
// verdict carries every failed rule so the uploader can fix them all at once.
type Violation struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Verdict is the complete outcome of one validation call.
type Verdict struct {
	Accepted   bool        `json:"accepted"`
	Violations []Violation `json:"violations,omitempty"`
}

// Codes returns the violation codes in report order.
func (v Verdict) Codes() []Code {
	out := make([]Code, len(v.Violations))
	for i, viol := range v.Violations {
		out[i] = viol.Code
	}
	return out
}
