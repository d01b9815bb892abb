package render

import (
	"encoding/binary"
	"math"
)

// quadVertexStride is the byte stride per quad vertex.
// Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes  (location 0)
//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
const quadVertexStride = 16

// quadIndexCount is the number of indices drawn per frame.
const quadIndexCount = 6

// Fullscreen quad in clip space. UV origin is top-left so the first frame
// row lands at the top of the screen.
var quadVertices = [4][4]float32{
	{-1, 1, 0, 0},  // top-left
	{-1, -1, 0, 1}, // bottom-left
	{1, -1, 1, 1},  // bottom-right
	{1, 1, 1, 0},   // top-right
}

// Two counter-clockwise triangles covering the quad.
var quadIndices = [quadIndexCount]uint16{0, 1, 2, 0, 2, 3}

// quadVertexData serializes the quad vertices into raw bytes for GPU
// upload.
func quadVertexData() []byte {
	data := make([]byte, len(quadVertices)*quadVertexStride)
	off := 0
	for _, v := range quadVertices {
		for _, f := range v {
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(f))
			off += 4
		}
	}
	return data
}

// quadIndexData serializes the quad indices into raw bytes for GPU upload.
func quadIndexData() []byte {
	data := make([]byte, len(quadIndices)*2)
	for i, idx := range quadIndices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// identityTransform is the 4x4 identity matrix uploaded when a custom
// vertex shader declares a transform uniform.
func identityTransform() []byte {
	m := [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	data := make([]byte, len(m)*4)
	for i, f := range m {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(f))
	}
	return data
}
