package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldDate       = "date"
	FieldKey        = "key"
	FieldChange     = "change"
	FieldHabitID    = "habit_id"
	FieldTaskID     = "task_id"
	FieldBookID     = "book_id"
	FieldVariant    = "variant"
	FieldEntries    = "entries"
	FieldVersion    = "schema_version"
)

const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentState     = "state"
	ComponentStorage   = "storage"
	ComponentCache     = "cache"
	ComponentInsight   = "insight"
	ComponentWorker    = "worker"
	ComponentNotify    = "notify"
	ComponentRateLimit = "rate_limit"
	ComponentCLI       = "cli"
)

const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpToggle   = "toggle"
	OpLoad     = "load"
	OpSave     = "save"
	OpClear    = "clear"
	OpGenerate = "generate"
	OpNotify   = "notify"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// Fields is a small builder for slog key/value pairs.
type Fields map[string]any

func NewFields() Fields {
	return make(Fields)
}

func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f Fields) With(key string, value any) Fields {
	f[key] = value
	return f
}

func (f Fields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
