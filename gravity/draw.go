package gravity

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// FrameConfig describes a rendered image of the simulation.
type FrameConfig struct {
	Width, Height int
	// Viewport is the part of the world mapped onto the image.
	Viewport Rect
	// Invert draws on a white background.
	Invert bool
	// DrawTree outlines every quadtree node inside the viewport.
	DrawTree bool
}

var DefaultFrameConfig = FrameConfig{
	Width:    800,
	Height:   600,
	Viewport: Rect{X: 0, Y: 0, Width: 1000, Height: 750},
}

var (
	colorSlow   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	colorMedium = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorFast   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorTree   = color.RGBA{R: 255, G: 0, B: 255, A: 77}
)

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round((1-t)*float64(x) + t*float64(y)))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// gradientColor maps t in [0, 1] onto blue, green, red. Values outside
// are clamped, NaN counts as 0.
func gradientColor(t float64) color.RGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = clamp(t, 0, 1)
	if t < 0.5 {
		return lerpColor(colorSlow, colorMedium, 2*t)
	}
	return lerpColor(colorMedium, colorFast, 2*t-1)
}

// Viewer gives read access to a consistent simulation state.
// *Simulation implements it.
type Viewer interface {
	View(fn func(p *Particles, qt *QuadTree))
	Config() SimulationConfig
}

// DrawFrame renders the particles inside conf.Viewport as PNG to w. If
// gradient is nil, a fresh one sampling the configured extremum field is
// used.
func DrawFrame(w io.Writer, sim Viewer, conf FrameConfig, gradient *GradientRange) error {
	if conf.Width <= 0 || conf.Height <= 0 {
		return errors.Errorf("invalid frame size %dx%d", conf.Width, conf.Height)
	}
	if conf.Viewport.Empty() {
		return errors.Errorf("invalid viewport %+v", conf.Viewport)
	}
	if gradient == nil {
		gradient = &GradientRange{Field: sim.Config().ExtremumField}
	}
	img := image.NewRGBA(image.Rect(0, 0, conf.Width, conf.Height))
	background := color.RGBA{A: 255}
	if conf.Invert {
		background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = background.R, background.G, background.B, background.A
	}
	zoomX := float64(conf.Width) / conf.Viewport.Width
	zoomY := float64(conf.Height) / conf.Viewport.Height
	toScreen := func(x, y float64) (int, int) {
		return int(math.Floor((x - conf.Viewport.X) * zoomX)), int(math.Floor((y - conf.Viewport.Y) * zoomY))
	}
	sim.View(func(p *Particles, qt *QuadTree) {
		gradient.Sample(p)
		if conf.DrawTree {
			for _, r := range qt.Bounds() {
				if !r.Intersects(conf.Viewport) {
					continue
				}
				x0, y0 := toScreen(r.X, r.Y)
				x1, y1 := toScreen(r.X+r.Width, r.Y+r.Height)
				strokeRect(img, x0, y0, x1, y1, colorTree)
			}
		}
		for _, slot := range qt.Query(conf.Viewport, p) {
			x, y := toScreen(p.posX[slot], p.posY[slot])
			c := gradientColor(gradient.Position(p.Norm(gradient.Field, slot)))
			fillDisc(img, x, y, p.radius[slot]*zoomX, c)
		}
	})
	return png.Encode(w, img)
}

// SaveFrame renders a frame into the file filename.
func SaveFrame(filename string, sim Viewer, conf FrameConfig, gradient *GradientRange) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	err = DrawFrame(file, sim, conf, gradient)
	if err != nil {
		return errors.Wrapf(err, "failed to render frame '%s'", filename)
	}
	return nil
}

// fillDisc only visits the part of the disc's bounding box that lies
// inside img.
func fillDisc(img *image.RGBA, cx, cy int, radius float64, c color.RGBA) {
	if !(radius >= 1) {
		img.SetRGBA(cx, cy, c)
		return
	}
	bounds := img.Rect
	x0 := int(math.Max(float64(bounds.Min.X), math.Floor(float64(cx)-radius)))
	x1 := int(math.Min(float64(bounds.Max.X-1), math.Ceil(float64(cx)+radius)))
	y0 := int(math.Max(float64(bounds.Min.Y), math.Floor(float64(cy)-radius)))
	y1 := int(math.Min(float64(bounds.Max.Y-1), math.Ceil(float64(cy)+radius)))
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		dy := float64(y - cy)
		for x := x0; x <= x1; x++ {
			dx := float64(x - cx)
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	dst := img.RGBAAt(x, y)
	a := float64(c.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round((1-a)*float64(d) + a*float64(s)))
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(dst.R, c.R), G: mix(dst.G, c.G), B: mix(dst.B, c.B), A: 255})
}

func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	bounds := img.Rect
	x0, x1 = clamp(x0, bounds.Min.X-1, bounds.Max.X), clamp(x1, bounds.Min.X-1, bounds.Max.X)
	y0, y1 = clamp(y0, bounds.Min.Y-1, bounds.Max.Y), clamp(y1, bounds.Min.Y-1, bounds.Max.Y)
	for x := x0; x <= x1; x++ {
		blend(img, x, y0, c)
		blend(img, x, y1, c)
	}
	for y := y0 + 1; y < y1; y++ {
		blend(img, x0, y, c)
		blend(img, x1, y, c)
	}
}
