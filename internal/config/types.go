package config

// Supported output types
const (
	// OutputTypeTxt is the plain-text artifact serialization
	OutputTypeTxt = "txt"

	// OutputTypeDocx is the paginated Word document serialization
	OutputTypeDocx = "docx"
)

// Constants for configuration limits and defaults
const (
	// MinBufferSize is the minimum allowed buffer size in bytes
	MinBufferSize = 64

	// DefaultBufferSize is the default buffer size in bytes
	DefaultBufferSize = 4096

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4

	// ProjectFileName is the optional per-project defaults file at the
	// traversal root
	ProjectFileName = ".codetext.yaml"
)
