package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldPipelineID is the pipeline run ID
	FieldPipelineID = "pipeline_id"

	// FieldStep is the pipeline step name (transcript, viral_analysis, ...)
	FieldStep = "step"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldPanel is the comic panel number during image rendering
	FieldPanel = "panel"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
