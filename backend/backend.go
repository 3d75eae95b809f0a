// Package backend defines the contract between a draw list and its
// renderers, plus a registry through which renderer implementations
// self-register.
//
// A Renderer consumes the flat buffers a dlist.DrawList produced for
// one frame, executing commands in emission order (painter's order),
// one indexed draw per command. Textures are owned per-renderer and
// referenced through generational handles; a stale handle fails closed
// with ErrTextureNotFound rather than touching another resource.
package backend

import (
	"errors"
	"image"

	"github.com/gogpu/dlist"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrTextureNotFound is returned for stale or unknown texture handles.
	ErrTextureNotFound = errors.New("backend: texture not found")
)

// Well-known backend names.
const (
	BackendWGPU     = "wgpu"
	BackendSoftware = "software"
)

// Renderer is the interface draw-list backends implement.
//
// Backends must be registered via Register() and are selected via
// Get() or Default(). All methods are single-threaded: the renderer is
// owned by the thread driving the frame.
type Renderer interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources, including every texture
	// still alive in the backend's table.
	// The backend should not be used after Close is called.
	Close()

	// CreateTexture uploads an image and returns a handle to it.
	CreateTexture(img image.Image) (dlist.TextureID, error)

	// UpdateTexture replaces the contents of an existing texture.
	// The image must have the texture's dimensions.
	UpdateTexture(id dlist.TextureID, img image.Image) error

	// DestroyTexture releases a texture. A stale or unknown handle
	// returns ErrTextureNotFound and releases nothing.
	DestroyTexture(id dlist.TextureID) error

	// Render executes one frame of draw commands in order.
	Render(dd *dlist.DrawData) error
}
