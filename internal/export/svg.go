// Package export writes vector snapshots of a configuration: atoms as
// element-colored circles, bonds as lines, with an energy caption.
package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/elements"
)

const (
	svgSize    = 640.0
	svgPadding = 40.0
)

// CPK-ish colors keyed by atomic number; anything else renders gray.
var elementColors = map[int]string{
	1:  "#e8e8e8",
	6:  "#555555",
	7:  "#3050f8",
	8:  "#ff0d0d",
	11: "#ab5cf2",
	16: "#ffff30",
	17: "#1ff01f",
	18: "#80d1e3",
}

// Display radii in angstroms, scaled into pixels with the projection.
var elementRadii = map[int]float64{
	1:  0.31,
	6:  0.76,
	7:  0.71,
	8:  0.66,
	11: 1.66,
	16: 1.05,
	17: 1.02,
	18: 1.06,
}

func elementColor(z int) string {
	if c, ok := elementColors[z]; ok {
		return c
	}
	return "#909090"
}

func elementRadius(z int) float64 {
	if r, ok := elementRadii[z]; ok {
		return r
	}
	return 0.8
}

// SVG writes a snapshot of s to path. The system is projected
// orthographically onto the XY plane, atoms painted back to front.
func SVG(s *atoms.State, path string) error {
	if s == nil || s.N == 0 {
		return fmt.Errorf("export: empty state")
	}

	minX, maxX := s.X[0].X, s.X[0].X
	minY, maxY := s.X[0].Y, s.X[0].Y
	for _, p := range s.X {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	spanX, spanY := maxX-minX, maxY-minY
	span := max(max(spanX, spanY), 1e-9)
	scale := (svgSize - 2*svgPadding) / span

	px := func(x float64) float64 { return svgPadding + (x-minX)*scale + (span-spanX)*scale/2 }
	py := func(y float64) float64 { return svgSize - svgPadding - (y-minY)*scale - (span-spanY)*scale/2 }

	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#101018"/>
`, svgSize, svgSize, svgSize, svgSize)

	for _, bd := range s.Bonds {
		if bd.I < 0 || bd.J < 0 || bd.I >= s.N || bd.J >= s.N {
			continue
		}
		a, c := s.X[bd.I], s.X[bd.J]
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#778899" stroke-width="2"/>
`, px(a.X), py(a.Y), px(c.X), py(c.Y))
	}

	// Painter's order: far atoms (low Z) first.
	order := make([]int, s.N)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return s.X[order[a]].Z < s.X[order[b]].Z })

	for _, i := range order {
		r := elementRadius(s.Type[i]) * scale * 0.5
		if r < 2 {
			r = 2
		}
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#000000" stroke-width="0.5"><title>%s</title></circle>
`, px(s.X[i].X), py(s.X[i].Y), r, elementColor(s.Type[i]), elements.Symbol(s.Type[i]))
	}

	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" fill="#c0c0d0" font-family="monospace" font-size="14">N=%d  U=%.4f kcal/mol</text>
</svg>
`, svgPadding, svgSize-12, s.N, s.E.Total())

	return os.WriteFile(path, []byte(b.String()), 0644)
}
