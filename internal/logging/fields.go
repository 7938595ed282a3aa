package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType names the event a log line records, e.g. frame_loaded.
	FieldEventType = "event_type"
	// FieldErrorHint carries the next step a user should take after a warning.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldPath is the file or directory a log line refers to.
	FieldPath = "path"
	// FieldFrameIndex is the 1-based position of a frame within the sequence.
	FieldFrameIndex = "frame_index"
	// FieldFrameCount is the total number of frames in the sequence.
	FieldFrameCount = "frame_count"
	// FieldOrderKey is the numeric ordering key derived from a file name.
	FieldOrderKey = "order_key"
	// FieldDelay is a frame delay in hundredths of a second.
	FieldDelay = "delay_cs"
)
