package roadnet

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"golang.org/x/image/colornames"

	"github.com/voidshard/roadnet/internal/geo"
)

// ErrEmptyModel is returned when drawing a model with nothing in it
var ErrEmptyModel = fmt.Errorf("model has no geometry to draw")

// ColourScheme defines how the parts of a road network are coloured.
type ColourScheme struct {
	Background    color.Color
	Roads         color.Color
	Intersections color.Color
	SideWalks     color.Color
	Borders       color.Color
	Lanes         color.Color
	Signals       color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background:    colornames.White,
		Roads:         colornames.Dimgray,
		Intersections: colornames.Darkslategray,
		SideWalks:     colornames.Lightgray,
		Borders:       colornames.Crimson,
		Lanes:         colornames.Gold,
		Signals:       colornames.Limegreen,
	}
}

// canvas maps ground plane positions onto image pixels
type canvas struct {
	ctx    *gg.Context
	min    r2.Point
	height float64
	scale  float64
	margin float64
}

func (c *canvas) xy(p r3.Vector) (float64, float64) {
	pt := groundPlane.To2D(p)
	// image y runs down
	return c.margin + (pt.X-c.min.X)*c.scale, c.height - c.margin - (pt.Y-c.min.Y)*c.scale
}

func (c *canvas) fill(ring []r3.Vector, col color.Color) {
	if len(ring) < 3 {
		return
	}
	c.ctx.NewSubPath()
	for _, p := range ring {
		c.ctx.LineTo(c.xy(p))
	}
	c.ctx.ClosePath()
	c.ctx.SetColor(col)
	c.ctx.Fill()
}

func (c *canvas) line(line []r3.Vector, col color.Color, width float64) {
	if len(line) < 2 {
		return
	}
	c.ctx.NewSubPath()
	for _, p := range line {
		c.ctx.LineTo(c.xy(p))
	}
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(width)
	c.ctx.Stroke()
}

// Image draws the model from above with scale pixels per metre.
func (m *Model) Image(scheme *ColourScheme, scale float64) (image.Image, error) {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	if scale <= 0 {
		scale = 1
	}

	bounds := r2.EmptyRect()
	for _, rb := range m.RoadBases() {
		for _, p := range rb.Outline() {
			bounds = bounds.AddPoint(groundPlane.To2D(p))
		}
	}
	if bounds.IsEmpty() {
		return nil, ErrEmptyModel
	}

	margin := 10.0
	size := bounds.Size()
	w := int(math.Ceil(size.X*scale + 2*margin))
	h := int(math.Ceil(size.Y*scale + 2*margin))

	c := &canvas{ctx: gg.NewContext(w, h), min: bounds.Lo(), height: float64(h), scale: scale, margin: margin}
	c.ctx.SetColor(scheme.Background)
	c.ctx.Clear()

	for _, s := range m.sideWalks {
		c.fill(s.Outline(), scheme.SideWalks)
	}
	for _, x := range m.intersections {
		c.fill(x.Outline(), scheme.Intersections)
	}
	for _, r := range m.roads {
		c.fill(r.Outline(), scheme.Roads)
		c.line(r.PrevBorder, scheme.Borders, 2)
		c.line(r.NextBorder, scheme.Borders, 2)

		// lane separators, evenly between the two ways
		for i := 1; i < len(r.Lanes); i++ {
			c.line(laneLine(r, float64(i)/float64(len(r.Lanes))), scheme.Lanes, 1)
		}
	}
	for _, x := range m.intersections {
		if x.TrafficSignal == nil {
			continue
		}
		for _, l := range x.TrafficSignal.Lights {
			px, py := c.xy(l.Position)
			c.ctx.DrawCircle(px, py, 3)
			c.ctx.SetColor(scheme.Signals)
			c.ctx.Fill()
		}
	}

	return c.ctx.Image(), nil
}

// SavePNG draws the model & writes it to fpath
func (m *Model) SavePNG(fpath string, scheme *ColourScheme, scale float64) error {
	im, err := m.Image(scheme, scale)
	if err != nil {
		return err
	}
	return gg.SavePNG(fpath, im)
}

// laneLine returns the line t of the way from the left way to the right
// way, sampled at the points of the longer way
func laneLine(r *Road, t float64) []r3.Vector {
	a, b := r.LeftWay, r.RightWay
	if len(a) < 2 || len(b) < 2 {
		return nil
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]r3.Vector, n)
	for i := range out {
		f := float64(i) / float64(n-1)
		pa, pb := alongPolyline(a, f), alongPolyline(b, f)
		out[i] = pa.Add(pb.Sub(pa).Mul(t))
	}
	return out
}

// alongPolyline returns the point fraction f of the way along line
func alongPolyline(line []r3.Vector, f float64) r3.Vector {
	total := geo.PolylineLength(line)
	if f <= 0 || total == 0 {
		return line[0]
	}
	if f >= 1 {
		return line[len(line)-1]
	}
	head, _ := geo.CutPolyline(line, f*total)
	return head[len(head)-1]
}
