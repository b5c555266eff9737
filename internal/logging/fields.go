package logging

// Structured field keys shared by every log line.
const (
	FieldService   = "service"
	FieldComponent = "component"
)
