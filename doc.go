// Package dlist provides an immediate-style 2D draw list for Go.
//
// # Overview
//
// dlist tessellates high-level draw calls (circles, anti-aliased
// polylines, convex polygon fills, textured quads) into flat
// vertex/index buffers plus an ordered command stream, in the manner
// of immediate-mode UI renderers. The list performs no GPU work;
// backends in backend/ consume the buffers, either on the CPU
// (backend/software) or through gogpu/wgpu (backend/wgpu).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/dlist"
//	    "github.com/gogpu/dlist/backend/software"
//	)
//
//	dl := dlist.New()
//	dl.SetDisplaySize(512, 512)
//	dl.AddCircleFilled(dlist.Pt(256, 256), 100, dlist.Red, 0)
//	dl.AddLine(dlist.Pt(0, 0), dlist.Pt(512, 512), dlist.White, 2)
//
//	r := software.New(512, 512)
//	_ = r.Init()
//	_ = r.Render(dl.DrawData())
//	_ = r.Target().SavePNG("output.png")
//
//	dl.Reset() // next frame, buffers reused
//
// # Architecture
//
// The library is organized into:
//   - Root package: DrawList, tessellation, Pixmap, packed Color
//   - handle: generational handle table for backend-owned resources
//   - backend: renderer contract and registry
//   - backend/software, backend/wgpu: CPU and GPU renderers
//   - font: TTF glyph atlas emitting textured quads
//
// # Coordinate System
//
// Uses standard framebuffer coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increasing clockwise on screen
//
// # Ordering
//
// Commands composite in painter's order. A backend executes them in
// emission order, one indexed draw per command; there is no z-buffer
// and no other ordering guarantee.
package dlist

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
