package render

import _ "embed"

// Embedded default quad shader sources.
//
//go:embed shaders/quad_vert.wgsl
var defaultVertexShaderSource string

//go:embed shaders/quad_frag.wgsl
var defaultFragmentShaderSource string

// DefaultVertexShader returns the WGSL source for the passthrough quad
// vertex stage.
func DefaultVertexShader() string {
	return defaultVertexShaderSource
}

// DefaultFragmentShader returns the WGSL source for the textured quad
// fragment stage.
func DefaultFragmentShader() string {
	return defaultFragmentShaderSource
}
