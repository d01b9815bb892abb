package render

import "errors"

// Presenter failure taxonomy. Shader failures carry the backend diagnostic
// in the wrapped message.
var (
	// ErrShaderCompile is returned when a single shader stage fails to
	// build.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrShaderLink is returned when the compiled stages cannot be
	// combined into a pipeline.
	ErrShaderLink = errors.New("render: pipeline link failed")

	// ErrResourceInvalid is returned when an operation runs against a
	// resource that was never created or whose creation failed.
	ErrResourceInvalid = errors.New("render: resource invalid")
)
