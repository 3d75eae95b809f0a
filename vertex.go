package dlist

import "github.com/gogpu/dlist/handle"

// TextureID references a backend-owned texture. The zero value means
// "no texture": untextured commands sample the backend's built-in
// opaque white pixel, so a single shader path serves both cases.
type TextureID = handle.Handle

// Vertex is one tessellated vertex: screen-space position, texture
// coordinate, and packed RGBA color. The layout is fixed at 20 bytes
// (pos 8, uv 8, color 4) and uploaded to GPU vertex buffers verbatim.
type Vertex struct {
	Pos   Point
	UV    Point
	Color Color
}

// VertexSize is the byte size of one Vertex as laid out in a vertex
// buffer.
const VertexSize = 20

// DrawCmd is one indexed draw: ElemCount indices starting at
// IdxOffset, clipped to ClipRect, sampling Texture. Commands are
// emitted in painter's order and must be executed in order.
type DrawCmd struct {
	// ClipRect is the scissor rectangle in framebuffer coordinates.
	ClipRect Rect

	// Texture to sample, or the zero handle for untextured geometry.
	Texture TextureID

	// VtxOffset is the index into the vertex buffer at which this
	// command's geometry starts. Indices are absolute, so backends
	// that bind the whole vertex buffer can ignore it.
	VtxOffset uint32

	// IdxOffset is the first index in the index buffer belonging to
	// this command.
	IdxOffset uint32

	// ElemCount is the number of indices to draw. Always a multiple
	// of 3.
	ElemCount uint32
}

// DrawData is the per-frame output of a DrawList: flat buffers plus
// the ordered command stream. It aliases the DrawList's internal
// storage and is invalidated by the next Reset.
type DrawData struct {
	Vertices []Vertex
	Indices  []uint32
	Commands []DrawCmd

	// DisplaySize is the framebuffer size the list was built for,
	// as set on the DrawList. Backends use it to size render targets
	// and the projection transform.
	DisplaySize Point
}

// TotalVtxCount returns the number of vertices in the frame.
func (d *DrawData) TotalVtxCount() int { return len(d.Vertices) }

// TotalIdxCount returns the number of indices in the frame.
func (d *DrawData) TotalIdxCount() int { return len(d.Indices) }

// Statistics summarizes one frame of draw-list output.
type Statistics struct {
	VertexCount   int
	IndexCount    int
	CommandCount  int
	TriangleCount int
}
