package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dlist"
	"github.com/gogpu/dlist/backend"
)

// GPU-dependent paths need a device and are exercised by the demo
// binary; these tests cover the data preparation, which must be
// correct regardless of hardware.

func f32At(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
}

func TestBuildVertexData(t *testing.T) {
	vts := []dlist.Vertex{
		{Pos: dlist.Pt(10, 20), UV: dlist.Pt(0.25, 0.75), Color: dlist.RGBA8(255, 0, 0, 128)},
		{Pos: dlist.Pt(-1, 2), UV: dlist.Pt(0, 1), Color: dlist.White},
	}
	data := buildVertexData(vts)
	if len(data) != 2*vertexStride {
		t.Fatalf("len = %d, want %d", len(data), 2*vertexStride)
	}

	if got := f32At(data, 0); got != 10 {
		t.Errorf("pos.x = %g", got)
	}
	if got := f32At(data, 12); got != 0.75 {
		t.Errorf("uv.y = %g", got)
	}
	if got := f32At(data, 16); got != 1 {
		t.Errorf("color.r = %g, want 1 (straight alpha)", got)
	}
	if got := f32At(data, 28); got < 0.50 || got > 0.51 {
		t.Errorf("color.a = %g, want ~0.502", got)
	}
	// Second vertex starts one stride in.
	if got := f32At(data, vertexStride); got != -1 {
		t.Errorf("vertex 1 pos.x = %g", got)
	}
}

func TestMakeViewportUniform(t *testing.T) {
	buf := makeViewportUniform(dlist.Pt(800, 600), 100, 100)
	if len(buf) != uniformSize {
		t.Fatalf("len = %d, want %d", len(buf), uniformSize)
	}
	if f32At(buf, 0) != 800 || f32At(buf, 4) != 600 {
		t.Errorf("viewport = %g x %g, want display size", f32At(buf, 0), f32At(buf, 4))
	}

	// Unset display size falls back to the target size.
	buf = makeViewportUniform(dlist.Point{}, 320, 240)
	if f32At(buf, 0) != 320 || f32At(buf, 4) != 240 {
		t.Errorf("fallback viewport = %g x %g", f32At(buf, 0), f32At(buf, 4))
	}
}

func TestDrawListVertexLayout(t *testing.T) {
	layouts := drawListVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("%d buffers, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != vertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, vertexStride)
	}
	if len(l.Attributes) != 3 {
		t.Fatalf("%d attributes, want 3", len(l.Attributes))
	}
	if l.Attributes[2].Format != gputypes.VertexFormatFloat32x4 || l.Attributes[2].Offset != 16 {
		t.Errorf("color attribute = %+v", l.Attributes[2])
	}
}

func TestScissorClamp(t *testing.T) {
	r := New(100, 80)

	x, y, w, h := r.scissor(dlist.R(-50, -50, 50, 50))
	if x != 0 || y != 0 || w != 50 || h != 50 {
		t.Errorf("negative clip = (%d,%d,%d,%d), want (0,0,50,50)", x, y, w, h)
	}

	_, _, w, h = r.scissor(dlist.R(0, 0, 1000, 1000))
	if w != 100 || h != 80 {
		t.Errorf("oversized clip = %dx%d, want 100x80", w, h)
	}

	_, _, w, h = r.scissor(dlist.R(200, 200, 300, 300))
	if w != 0 || h != 0 {
		t.Errorf("off-target clip = %dx%d, want 0x0", w, h)
	}
}

func TestRenderer_NotInitialized(t *testing.T) {
	r := New(8, 8)
	if err := r.Render(&dlist.DrawData{Commands: make([]dlist.DrawCmd, 1)}); err != backend.ErrNotInitialized {
		t.Errorf("Render before Init = %v, want ErrNotInitialized", err)
	}
}

func TestRenderer_Registered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendWGPU) {
		t.Fatal("wgpu backend did not self-register")
	}
	r := backend.Get(backend.BackendWGPU, 8, 8)
	if r == nil || r.Name() != backend.BackendWGPU {
		t.Fatalf("Get = %v", r)
	}
}
