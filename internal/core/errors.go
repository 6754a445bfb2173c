package core

import "errors"

// ValidationKind identifies which check rejected a form submission.
type ValidationKind int

const (
	EmptyAmount ValidationKind = iota + 1
	InvalidAmountFormat
	NonPositiveAmount
	InvalidDateFormat
	MultilineText
)

func (k ValidationKind) String() string {
	switch k {
	case EmptyAmount:
		return "empty_amount"
	case InvalidAmountFormat:
		return "invalid_amount_format"
	case NonPositiveAmount:
		return "non_positive_amount"
	case InvalidDateFormat:
		return "invalid_date_format"
	case MultilineText:
		return "multiline_text"
	default:
		return "unknown"
	}
}

// ValidationError is returned before any mutation when form input is rejected.
// Its message is meant to be shown to the user as is.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind, so callers can compare
// against the exported sentinels with errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyAmount         = &ValidationError{Kind: EmptyAmount, Message: "Please enter amount."}
	ErrInvalidAmountFormat = &ValidationError{Kind: InvalidAmountFormat, Message: "Invalid amount entered."}
	ErrNonPositiveAmount   = &ValidationError{Kind: NonPositiveAmount, Message: "Amount must be positive."}
	ErrInvalidDateFormat   = &ValidationError{Kind: InvalidDateFormat, Message: "Date must be in YYYY-MM-DD format."}
	ErrMultilineText       = &ValidationError{Kind: MultilineText, Message: "Category and description must be on a single line."}

	ErrNothingSelected = errors.New("no expense selected")
	ErrEmptyDataset    = errors.New("no expenses to report")
)
