package streamvis

import (
	"fmt"
	"image/color"

	"github.com/notargets/avs/chart2d"
)

func tagColor(tag CellTag) (c color.RGBA) {
	switch tag {
	case TagTypeA:
		c = color.RGBA{R: 255, G: 0, B: 50, A: 0}
	case TagTypeB:
		c = color.RGBA{R: 50, G: 0, B: 255, A: 0}
	default:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	}
	return
}

// Plot renders the XY projection of the streamlines and their cell boxes
func Plot(lines []Streamline, width, height int) (chart *chart2d.Chart2D) {
	var (
		xmin, xmax, ymin, ymax = boundingBox(lines)
		white                  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	)
	chart = chart2d.NewChart2D(width, height,
		float32(xmin), float32(xmax), float32(ymin), float32(ymax))
	go chart.Plot()

	for i, sl := range lines {
		x := make([]float64, len(sl.Points))
		y := make([]float64, len(sl.Points))
		for j, p := range sl.Points {
			x[j], y[j] = p[0], p[1]
		}
		if err := chart.AddSeries(fmt.Sprintf("streamline-%d", i), x, y,
			chart2d.NoGlyph, chart2d.Solid, white); err != nil {
			panic("unable to add streamline series")
		}
		for b, box := range sl.Boxes {
			for e, edge := range boxEdges {
				p, q := box.Corners[edge[0]], box.Corners[edge[1]]
				name := fmt.Sprintf("box-%d-%d-edge-%d", i, b, e)
				if err := chart.AddSeries(name,
					[]float64{p[0], q[0]}, []float64{p[1], q[1]},
					chart2d.NoGlyph, chart2d.Solid, tagColor(box.Tag)); err != nil {
					panic("unable to add cell box series")
				}
			}
		}
	}
	return
}

func boundingBox(lines []Streamline) (xmin, xmax, ymin, ymax float64) {
	first := true
	grow := func(x, y float64) {
		if first {
			xmin, xmax, ymin, ymax = x, x, y, y
			first = false
			return
		}
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
		if y < ymin {
			ymin = y
		}
		if y > ymax {
			ymax = y
		}
	}
	for _, sl := range lines {
		for _, p := range sl.Points {
			grow(p[0], p[1])
		}
		for _, box := range sl.Boxes {
			for _, c := range box.Corners {
				grow(c[0], c[1])
			}
		}
	}
	if first {
		xmin, xmax, ymin, ymax = 0, 1, 0, 1
	}
	// Pad 10% so wireframes are not clipped at the chart edge
	dx, dy := 0.1*(xmax-xmin), 0.1*(ymax-ymin)
	xmin, xmax, ymin, ymax = xmin-dx, xmax+dx, ymin-dy, ymax+dy
	return
}
