package font

// shelf is one horizontal strip of the atlas. New glyphs are placed
// left to right; the shelf height is fixed by the first glyph unless
// the shelf is the bottom-most one, which may still grow.
type shelf struct {
	y      int
	height int
	nextX  int
}

// shelfPacker packs glyph rectangles into a fixed-size atlas using
// shelf allocation. Glyphs of similar height share a shelf, which
// keeps waste low for a single font face where most glyphs are about
// the same height.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
	nextY   int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{width: width, height: height, padding: padding}
}

// allocate finds a spot for a w x h rectangle and returns its top-left
// corner. Returns ok=false when the atlas is full.
func (p *shelfPacker) allocate(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	pw := w + p.padding
	ph := h + p.padding
	if pw > p.width {
		return 0, 0, false
	}

	// Best fit: the shelf with the least wasted height.
	best := -1
	bestWaste := p.height + 1
	for i := range p.shelves {
		s := &p.shelves[i]
		if ph > s.height || s.nextX+pw > p.width {
			continue
		}
		if waste := s.height - ph; waste < bestWaste {
			best = i
			bestWaste = waste
		}
	}
	if best >= 0 {
		s := &p.shelves[best]
		x, y = s.nextX, s.y
		s.nextX += pw
		return x, y, true
	}

	// The last shelf may grow to fit a taller glyph if nothing is
	// packed below it yet.
	if n := len(p.shelves); n > 0 {
		s := &p.shelves[n-1]
		if ph > s.height && s.nextX+pw <= p.width && s.y+ph <= p.height {
			s.height = ph
			p.nextY = s.y + ph
			x, y = s.nextX, s.y
			s.nextX += pw
			return x, y, true
		}
	}

	// Open a new shelf.
	if p.nextY+ph > p.height {
		return 0, 0, false
	}
	p.shelves = append(p.shelves, shelf{y: p.nextY, height: ph, nextX: pw})
	x, y = 0, p.nextY
	p.nextY += ph
	return x, y, true
}

func (p *shelfPacker) reset() {
	p.shelves = p.shelves[:0]
	p.nextY = 0
}
