package survey

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlanRenderer draws an inspection map of a plan run: site shorelines,
// deployment blocks, sampled points and their spacing circles. The map
// replaces the interactive web map the protocol used for eyeballing draws.
type PlanRenderer struct {
	Sites  []*Site
	Blocks []*Block
	Points []DeployPoint

	MinDistance float64           // spacing circle diameter in meters
	Scale       float64           // canvas millimeters per world meter
	Padding     float64           // padding around the extent in world meters
	Resolution  canvas.Resolution // PNG output resolution

	// world origin cached by canvasSize for coordinate mapping
	minX, minY float64
}

// NewPlanRenderer creates a renderer with default settings: 1 km of world
// per 50 mm of canvas, 200 m padding, 150 DPI raster output.
func NewPlanRenderer(sites []*Site, blocks []*Block, points []DeployPoint, minDistance float64) *PlanRenderer {
	return &PlanRenderer{
		Sites:       sites,
		Blocks:      blocks,
		Points:      points,
		MinDistance: minDistance,
		Scale:       0.05,
		Padding:     200.0,
		Resolution:  canvas.DPI(150),
	}
}

// canvasRenderer is the surface both the svg and rasterizer backends expose.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the inspection map as an SVG to the provided writer.
func (r *PlanRenderer) RenderToSVG(w io.Writer) error {
	width, height := r.canvasSize()
	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer, width, height)
	return svgRenderer.Close()
}

// RenderToPNG writes the inspection map as a PNG to the provided writer,
// with point names drawn as raster labels.
func (r *PlanRenderer) RenderToPNG(w io.Writer) error {
	width, height := r.canvasSize()
	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, width, height)
	r.drawLabels(rast, height)
	return png.Encode(w, rast)
}

// RenderToFile writes SVG or PNG depending on the file extension,
// overwriting any existing file.
func (r *PlanRenderer) RenderToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		err = r.RenderToSVG(f)
	case ".png":
		err = r.RenderToPNG(f)
	default:
		return fmt.Errorf("%s: unsupported map format %q (use .svg or .png)", path, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

func (r *PlanRenderer) renderToCanvas(renderer canvasRenderer, width, height float64) {
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	// Site shorelines: filled pale, stroked dark.
	siteStyle := canvas.DefaultStyle
	siteStyle.Fill = canvas.Paint{Color: color.RGBA{214, 234, 248, 255}}
	siteStyle.Stroke = canvas.Paint{Color: color.RGBA{21, 67, 96, 255}}
	siteStyle.StrokeWidth = 0.5

	for _, site := range r.Sites {
		for _, ring := range site.Polygon {
			renderer.RenderPath(r.ringPath(ring), siteStyle, canvas.Identity)
		}
	}

	// Block outlines: stroked gray, dashed.
	blockStyle := canvas.DefaultStyle
	blockStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	blockStyle.Stroke = canvas.Paint{Color: color.RGBA{120, 120, 120, 255}}
	blockStyle.StrokeWidth = 0.3
	blockStyle.Dashes = []float64{1.0, 1.0}

	for _, blk := range r.Blocks {
		for _, ring := range blk.Polygon {
			renderer.RenderPath(r.ringPath(ring), blockStyle, canvas.Identity)
		}
	}

	// Spacing circles: half the minimum distance, so two circles touching
	// means two points at exactly the plan minimum.
	if r.MinDistance > 0 {
		circleStyle := canvas.DefaultStyle
		circleStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		circleStyle.Stroke = canvas.Paint{Color: color.RGBA{192, 57, 43, 255}}
		circleStyle.StrokeWidth = 0.25
		circleStyle.Dashes = []float64{0.8, 0.8}

		radius := r.MinDistance / 2 * r.Scale
		for _, dp := range r.Points {
			cx, cy := r.toCanvas(dp.Point)
			circle := canvas.Circle(radius).Translate(cx, cy)
			renderer.RenderPath(circle, circleStyle, canvas.Identity)
		}
	}

	// The points themselves.
	pointStyle := canvas.DefaultStyle
	pointStyle.Fill = canvas.Paint{Color: color.RGBA{192, 57, 43, 255}}
	pointStyle.Stroke = canvas.Paint{Color: canvas.Black}
	pointStyle.StrokeWidth = 0.2

	for _, dp := range r.Points {
		cx, cy := r.toCanvas(dp.Point)
		dot := canvas.Circle(0.8).Translate(cx, cy)
		renderer.RenderPath(dot, pointStyle, canvas.Identity)
	}
}

// drawLabels writes point names next to their markers on the raster output.
// The canvas y axis points up while the image y axis points down, hence the
// flip against the canvas height.
func (r *PlanRenderer) drawLabels(img *rasterizer.Rasterizer, heightMM float64) {
	dpmm := float64(r.Resolution)
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for _, dp := range r.Points {
		cx, cy := r.toCanvas(dp.Point)
		px := (cx + 1.5) * dpmm
		py := (heightMM - cy) * dpmm
		drawer.Dot = fixed.P(int(px), int(py))
		drawer.DrawString(dp.Name)
	}
}

// ringPath converts a polygon ring to a closed canvas path.
func (r *PlanRenderer) ringPath(ring orb.Ring) *canvas.Path {
	path := &canvas.Path{}
	for i, p := range ring {
		cx, cy := r.toCanvas(p)
		if i == 0 {
			path.MoveTo(cx, cy)
		} else {
			path.LineTo(cx, cy)
		}
	}
	path.Close()
	return path
}

// toCanvas maps a working-CRS point to canvas millimeters.
func (r *PlanRenderer) toCanvas(p orb.Point) (float64, float64) {
	return (p.X() - r.minX + r.Padding) * r.Scale, (p.Y() - r.minY + r.Padding) * r.Scale
}

func (r *PlanRenderer) canvasSize() (width, height float64) {
	minX, minY, maxX, maxY := r.worldBounds()
	r.minX, r.minY = minX, minY
	width = (maxX - minX + 2*r.Padding) * r.Scale
	height = (maxY - minY + 2*r.Padding) * r.Scale
	return width, height
}

func (r *PlanRenderer) worldBounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64

	extend := func(p orb.Point) {
		minX = math.Min(minX, p.X())
		minY = math.Min(minY, p.Y())
		maxX = math.Max(maxX, p.X())
		maxY = math.Max(maxY, p.Y())
	}
	for _, site := range r.Sites {
		for _, ring := range site.Polygon {
			for _, p := range ring {
				extend(p)
			}
		}
	}
	for _, dp := range r.Points {
		extend(dp.Point)
	}
	if minX > maxX {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}
