package log

const (
	ModeProduction  = "production"
	ModeDebug       = "debug"
	EncodingJSON    = "json"
	EncodingConsole = "console"

	FieldTraceID = "trace_id"
)
