package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidsync/physics"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// drawPhysicsDebug outlines every shape of pw in render space. With full set
// it also draws constraints and contact points.
func drawPhysicsDebug(pw *physics.World, screen *ebiten.Image, full bool) {
	if pw == nil || pw.Space() == nil || screen == nil {
		return
	}
	flags := uint(cp.DRAW_SHAPES)
	if full {
		flags |= cp.DRAW_CONSTRAINTS | cp.DRAW_COLLISION_POINTS
	}
	cp.DrawSpace(pw.Space(), &debugDrawer{screen: screen, scale: pw.Scale(), flags: flags})
}

type debugDrawer struct {
	screen *ebiten.Image
	scale  physics.Scale
	flags  uint
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, fill)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	half := float32(size / 2)
	c := toNRGBA(fill)
	vector.StrokeLine(d.screen, x-half, y, x+half, y, 1, c, true)
	vector.StrokeLine(d.screen, x, y-half, x, y+half, 1, c, true)
}

func (d *debugDrawer) Flags() uint {
	return d.flags
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return fromColor(colornames.Palegreen)
}

// ShapeColor tells static, sleeping and awake bodies apart.
func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	body := shape.Body()
	switch {
	case body.GetType() == cp.BODY_STATIC:
		return fromColor(colornames.Slategray)
	case body.IsSleeping():
		return fromColor(colornames.Steelblue)
	default:
		return fromColor(colornames.Limegreen)
	}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return fromColor(colornames.Orange)
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return fromColor(colornames.Crimson)
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func (d *debugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *debugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *debugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *debugDrawer) toScreen(v cp.Vector) (float32, float32) {
	x, y := d.scale.VecFromSim(v)
	return float32(x), float32(y)
}

func fromColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
