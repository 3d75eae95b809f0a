// Command dldemo renders a draw-list showcase to a PNG: filled and
// stroked shapes, anti-aliased polylines, clipping, textured quads and
// atlas text.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"math"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/dlist"
	"github.com/gogpu/dlist/backend"
	_ "github.com/gogpu/dlist/backend/software"
	_ "github.com/gogpu/dlist/backend/wgpu"
	"github.com/gogpu/dlist/font"
)

func main() {
	var (
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 600, "image height")
		output      = flag.String("output", "dldemo.png", "output file")
		backendName = flag.String("backend", "", "renderer backend (default: best available)")
	)
	flag.Parse()

	r, err := pickBackend(*backendName, *width, *height)
	if err != nil {
		log.Fatalf("Failed to initialize a renderer: %v", err)
	}
	defer r.Close()
	log.Printf("Rendering with the %s backend", r.Name())

	dl := dlist.New()
	dl.SetDisplaySize(float32(*width), float32(*height))

	drawBackground(dl, *width, *height)
	drawShapes(dl)
	drawLines(dl)
	drawClipping(dl)
	drawTexture(dl, r)
	drawText(dl, r)

	if err := r.Render(dl.DrawData()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	target, ok := r.(interface{ Target() *dlist.Pixmap })
	if !ok {
		log.Fatalf("Backend %s has no readable target", r.Name())
	}
	if err := target.Target().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := dl.Stats()
	log.Printf("Saved %s (%dx%d): %d vertices, %d triangles, %d commands",
		*output, *width, *height, st.VertexCount, st.TriangleCount, st.CommandCount)
}

func pickBackend(name string, width, height int) (backend.Renderer, error) {
	if name == "" {
		return backend.InitDefault(width, height)
	}
	r := backend.Get(name, width, height)
	if r == nil {
		return nil, backend.ErrBackendNotAvailable
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func drawBackground(dl *dlist.DrawList, w, h int) {
	// Vertical gradient out of horizontal bands.
	const steps = 64
	for i := 0; i < steps; i++ {
		t := float32(i) / steps
		c := dlist.RGBA8(uint8(26+t*80), uint8(42+t*60), uint8(84+t*40), 255)
		y0 := float32(h) * t
		y1 := float32(h)*(t+1.0/steps) + 1
		dl.AddRectFilled(dlist.Pt(0, y0), dlist.Pt(float32(w), y1), c, 0)
	}
}

func drawShapes(dl *dlist.DrawList) {
	// Overlapping translucent circles.
	dl.AddCircleFilled(dlist.Pt(150, 150), 60, dlist.RGBA8(255, 80, 80, 200), 0)
	dl.AddCircleFilled(dlist.Pt(200, 150), 60, dlist.RGBA8(80, 255, 80, 200), 0)
	dl.AddCircleFilled(dlist.Pt(175, 200), 60, dlist.RGBA8(80, 80, 255, 200), 0)

	// Rounded rectangle with an outline.
	dl.AddRectFilled(dlist.Pt(330, 100), dlist.Pt(470, 190), dlist.RGBA8(255, 200, 0, 255), 15)
	dl.AddRect(dlist.Pt(330, 100), dlist.Pt(470, 190), dlist.White, 15, 3)

	// Regular polygons.
	dl.AddNgonFilled(dlist.Pt(580, 150), 55, dlist.RGBA8(255, 128, 0, 255), 5)
	dl.AddNgon(dlist.Pt(700, 150), 55, dlist.RGBA8(128, 0, 255, 255), 6, 3)

	// Triangles.
	dl.AddTriangleFilled(dlist.Pt(80, 300), dlist.Pt(180, 300), dlist.Pt(130, 390), dlist.Cyan)
	dl.AddTriangle(dlist.Pt(200, 300), dlist.Pt(300, 300), dlist.Pt(250, 390), dlist.Magenta, 2)
}

func drawLines(dl *dlist.DrawList) {
	// A sine wave stroked as one polyline.
	dl.PathClear()
	for i := 0; i <= 128; i++ {
		x := 340 + float32(i)*2.8
		y := 340 + 40*float32(math.Sin(float64(i)*0.15))
		dl.PathLineTo(dlist.Pt(x, y))
	}
	dl.PathStroke(dlist.RGBA8(120, 220, 255, 255), false, 3)

	// Thin hairlines fanning out.
	for i := 0; i < 12; i++ {
		a := float64(i) / 11 * math.Pi / 2
		end := dlist.Pt(80+140*float32(math.Cos(a)), 560-140*float32(math.Sin(a)))
		dl.AddLine(dlist.Pt(80, 560), end, dlist.RGBA8(255, 255, 255, 180), 1)
	}
}

func drawClipping(dl *dlist.DrawList) {
	// Circles clipped to a window; the clip boundary stays razor sharp
	// while the circle edges stay anti-aliased.
	clip := dlist.R(340, 420, 540, 560)
	dl.PushClipRect(clip, true)
	for i := 0; i < 5; i++ {
		c := dlist.Pt(360+float32(i)*45, 490)
		dl.AddCircleFilled(c, 50, dlist.RGBA8(uint8(50*i), 200, uint8(255-40*i), 220), 0)
	}
	dl.PopClipRect()
	dl.AddRect(clip.Min, clip.Max, dlist.White, 0, 1)
}

func drawTexture(dl *dlist.DrawList, r backend.Renderer) {
	tex, err := r.CreateTexture(checkerboard(64, 8))
	if err != nil {
		log.Printf("Skipping texture demo: %v", err)
		return
	}
	dl.AddImage(tex, dlist.Pt(580, 420), dlist.Pt(708, 548), dlist.Pt(0, 0), dlist.Pt(1, 1), dlist.White)
}

func drawText(dl *dlist.DrawList, r backend.Renderer) {
	atlas, err := font.NewAtlas(goregular.TTF, 22)
	if err != nil {
		log.Printf("Skipping text demo: %v", err)
		return
	}
	if err := atlas.Upload(r); err != nil {
		log.Printf("Skipping text demo: %v", err)
		return
	}
	atlas.Draw(dl, dlist.Pt(40, 20), "dlist draw-list renderer", dlist.White)
	atlas.Draw(dl, dlist.Pt(40, 20+atlas.LineHeight()), "shapes, lines, clips, textures, text",
		dlist.RGBA8(200, 220, 255, 255))
}

// checkerboard builds a size x size test texture with cell-sized
// squares.
func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{40, 40, 40, 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{230, 230, 230, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
