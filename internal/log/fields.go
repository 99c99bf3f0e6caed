package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldBuildID   = "build_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldRow       = "row"
	FieldDateText  = "date_text"
	FieldSlug      = "slug"
	FieldMonth     = "month"
	FieldYear      = "year"
	FieldPath      = "path"
	FieldTemplate  = "template"
	FieldSource    = "source"
	FieldCount     = "count"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentParser    = "parser"
	ComponentCalendar  = "calendar"
	ComponentSheets    = "sheets"
	ComponentRender    = "render"
	ComponentSite      = "site"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentGenerator = "generator"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpParse   = "parse"
	OpGroup   = "group"
	OpRender  = "render"
	OpWrite   = "write"
	OpCopy    = "copy"
	OpPublish = "publish"
	OpStartup = "startup"
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

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRow adds the fields that locate a source row
func (f LogFields) WithRow(row int, dateText string) LogFields {
	f[FieldRow] = row
	f[FieldDateText] = dateText
	return f
}

// WithPage adds the fields that identify an output page
func (f LogFields) WithPage(template, path string) LogFields {
	f[FieldTemplate] = template
	f[FieldPath] = path
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
