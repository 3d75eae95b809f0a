package backend

import (
	"image"
	"testing"

	"github.com/gogpu/dlist"
)

// fakeRenderer is a minimal Renderer for registry tests.
type fakeRenderer struct {
	name string
}

func (f *fakeRenderer) Name() string { return f.name }
func (f *fakeRenderer) Init() error  { return nil }
func (f *fakeRenderer) Close()       {}
func (f *fakeRenderer) CreateTexture(image.Image) (dlist.TextureID, error) {
	return dlist.TextureID{}, nil
}
func (f *fakeRenderer) UpdateTexture(dlist.TextureID, image.Image) error { return nil }
func (f *fakeRenderer) DestroyTexture(dlist.TextureID) error             { return nil }
func (f *fakeRenderer) Render(*dlist.DrawData) error                     { return nil }

func TestRegistry_RegisterGet(t *testing.T) {
	Register("fake", func(w, h int) Renderer { return &fakeRenderer{name: "fake"} })
	defer Unregister("fake")

	if !IsRegistered("fake") {
		t.Fatal("fake backend not registered")
	}
	r := Get("fake", 10, 10)
	if r == nil || r.Name() != "fake" {
		t.Fatalf("Get returned %v", r)
	}
	if Get("missing", 10, 10) != nil {
		t.Error("Get of unregistered backend should return nil")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	Register("tmp", func(w, h int) Renderer { return &fakeRenderer{name: "tmp"} })
	Unregister("tmp")
	if IsRegistered("tmp") {
		t.Error("backend still registered after Unregister")
	}
}

func TestRegistry_DefaultPriority(t *testing.T) {
	Register(BackendSoftware, func(w, h int) Renderer { return &fakeRenderer{name: BackendSoftware} })
	Register(BackendWGPU, func(w, h int) Renderer { return &fakeRenderer{name: BackendWGPU} })
	defer Unregister(BackendSoftware)
	defer Unregister(BackendWGPU)

	r := Default(10, 10)
	if r == nil || r.Name() != BackendWGPU {
		t.Fatalf("Default = %v, want wgpu first", r)
	}

	Unregister(BackendWGPU)
	r = Default(10, 10)
	if r == nil || r.Name() != BackendSoftware {
		t.Fatalf("Default = %v, want software fallback", r)
	}
}

func TestRegistry_InitDefaultNoBackends(t *testing.T) {
	for _, name := range Available() {
		Unregister(name)
	}
	if _, err := InitDefault(10, 10); err == nil {
		t.Error("InitDefault with empty registry should fail")
	}
}
