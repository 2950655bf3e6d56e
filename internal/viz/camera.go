package viz

import (
	"math"
	"sort"

	"github.com/san-kum/atomsim/internal/linalg"
)

// Camera projects world coordinates onto the canvas: rotation about
// the three axes, uniform zoom, and a fixed-eye perspective divide.
type Camera struct {
	Distance         float64 // eye distance along +Z
	RotX, RotY, RotZ float64
	Zoom             float64
	Near             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Zoom: 1.0, Near: 0.1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotation() linalg.Mat3 {
	rx := linalg.RotX(c.RotX)
	ry := linalg.RotY(c.RotY)
	rz := linalg.RotZ(c.RotZ)
	return rz.Mul(ry.Mul(rx))
}

// Project maps a world point to pixel coordinates on a sw x sh pixel
// screen. It returns the depth after rotation and whether the point
// landed on screen.
func (c *Camera) Project(p linalg.Vec3, sw, sh int) (x, y int, depth float64, ok bool) {
	r := c.rotation().MulVec(p).Scale(c.Zoom)
	if r.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - r.Z)

	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := minDim / 3.0

	x = int(r.X*persp*scale) + sw/2
	y = int(-r.Y*persp*scale) + sh/2
	return x, y, r.Z, x >= 0 && x < sw && y >= 0 && y < sh
}

// Edge is one wireframe segment; a zero-length edge is a point.
type Edge struct {
	A, B linalg.Vec3
}

type Wireframe struct {
	Edges []Edge
}

func (w *Wireframe) AddEdge(a, b linalg.Vec3) { w.Edges = append(w.Edges, Edge{A: a, B: b}) }
func (w *Wireframe) AddPoint(p linalg.Vec3)   { w.Edges = append(w.Edges, Edge{A: p, B: p}) }
func (w *Wireframe) Clear()                   { w.Edges = w.Edges[:0] }

// Render draws the wireframe back-to-front onto the canvas.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4

	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	proj := make([]projected, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.A, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.B, sw, sh)
		if v1 || v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
