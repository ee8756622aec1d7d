package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldPath        = "path"
	FieldBackend     = "backend"
	FieldCount       = "count"
	FieldDate        = "sale_date"
	FieldSeller      = "seller"
	FieldProduct     = "product"
	FieldRegion      = "region"
	FieldQuantity    = "quantity"
	FieldTotalCents  = "total_cents"
	FieldGrandCents  = "grand_total_cents"
	FieldPlaceholder = "placeholder"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentConfig    = "config"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentBackend   = "backend"
	ComponentAggregate = "aggregate"
	ComponentReport    = "report"
	ComponentTemplate  = "template"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpAppend   = "append"
	OpClear    = "clear"
	OpExport   = "export"
	OpValidate = "validate"
	OpCompute  = "compute"
	OpRender   = "render"
	OpInit     = "init"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeArithmetic    = "arithmetic_error"
	ErrorTypePersistence   = "persistence_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(kind string) LogFields {
	f[FieldErrorType] = kind
	return f
}

// WithPath adds a file path field
func (f LogFields) WithPath(path string) LogFields {
	f[FieldPath] = path
	return f
}

// WithCount adds a record count field
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// WithSale adds sale-related fields
func (f LogFields) WithSale(date, seller, product, region string, quantity int, totalCents int64) LogFields {
	f[FieldDate] = date
	f[FieldSeller] = seller
	f[FieldProduct] = product
	f[FieldRegion] = region
	f[FieldQuantity] = quantity
	f[FieldTotalCents] = totalCents
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
