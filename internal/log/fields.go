package log

import "expensetracker/internal/core"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldSessionID   = "session_id"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldOperation   = "operation"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldCount       = "count"
	FieldIndex       = "index"
	FieldMonth       = "month"
	FieldSchema      = "schema_version"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldDescription = "description"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
	ComponentUI      = "ui"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpDelete   = "delete"
	OpList     = "list"
	OpReport   = "report"
	OpLoad     = "load"
	OpSave     = "save"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeSelection     = "selection_error"
	ErrorTypeEmptyDataset  = "empty_dataset"
	ErrorTypePersistence   = "persistence_error"
	ErrorTypeCorruption    = "load_corruption"
	ErrorTypeConfiguration = "configuration_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category field
func (f LogFields) WithErrorType(t string) LogFields {
	f[FieldErrorType] = t
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithIndex adds the table position of the record being acted on
func (f LogFields) WithIndex(i int) LogFields {
	f[FieldIndex] = i
	return f
}

// WithCount adds a record count
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// WithMonth adds the YYYY-MM bucket a record falls into
func (f LogFields) WithMonth(month string) LogFields {
	f[FieldMonth] = month
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(e core.Expense) LogFields {
	f[FieldAmount] = core.FormatAmount(e.Amount)
	f[FieldCategory] = e.Category
	f[FieldDate] = e.Date
	f[FieldDescription] = e.Description
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
