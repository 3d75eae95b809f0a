package dlist

// Option configures a DrawList during creation.
//
// Example:
//
//	// Defaults: anti-aliasing on, 0.30px tessellation tolerance
//	dl := dlist.New()
//
//	// Coarser circles, no AA fringes
//	dl := dlist.New(
//	    dlist.WithTessellationTolerance(1.0),
//	    dlist.WithAntiAliasedLines(false),
//	    dlist.WithAntiAliasedFill(false),
//	)
type Option func(*listOptions)

// listOptions holds optional configuration for DrawList creation.
type listOptions struct {
	tessTol     float32
	aaLines     bool
	aaFill      bool
	vtxCapacity int
	idxCapacity int
}

// defaultListOptions returns the default draw-list options.
func defaultListOptions() listOptions {
	return listOptions{
		tessTol: DefaultTessellationTolerance,
		aaLines: true,
		aaFill:  true,
	}
}

// WithTessellationTolerance sets the maximum allowed deviation, in
// pixels, between a tessellated arc and the true circle. Smaller
// values produce more segments. Non-positive values are ignored.
func WithTessellationTolerance(tol float32) Option {
	return func(o *listOptions) {
		if tol > 0 {
			o.tessTol = tol
		}
	}
}

// WithAntiAliasedLines toggles the 1px feather on stroked lines.
// When disabled, strokes emit plain quads with hard edges.
func WithAntiAliasedLines(enable bool) Option {
	return func(o *listOptions) {
		o.aaLines = enable
	}
}

// WithAntiAliasedFill toggles the 1px feather ring on convex fills.
// When disabled, fills emit a plain triangle fan.
func WithAntiAliasedFill(enable bool) Option {
	return func(o *listOptions) {
		o.aaFill = enable
	}
}

// WithCapacity preallocates the vertex and index buffers. Useful when
// the caller knows the approximate per-frame geometry size and wants
// to avoid growth reallocations in the first frames.
func WithCapacity(vertices, indices int) Option {
	return func(o *listOptions) {
		if vertices > 0 {
			o.vtxCapacity = vertices
		}
		if indices > 0 {
			o.idxCapacity = indices
		}
	}
}
