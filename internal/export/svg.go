package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/sim"
	"github.com/san-kum/tripend/internal/viz"
)

var linkColors = [dynamo.Links]string{"#00ffff", "#ff00ff", "#ffff00"}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString("<g fill=\"#00ff00\">\n")

	dotRadius := scale * 0.4
	w, h := canvas.Width*2, canvas.Height*4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws the path of every joint across samples and the
// links at the final sample. The pivot sits at the centre of a size x size
// image and reach model units map to half of it.
func TrajectoryToSVG(samples []sim.Sample, reach float64, size int) string {
	if len(samples) == 0 || !(reach > 0) || size <= 0 {
		return ""
	}

	half := float64(size) / 2
	scale := half / reach
	project := func(p dynamo.Point) (float64, float64) {
		return half + p.X*scale, half - p.Y*scale
	}

	var sb strings.Builder
	writeHeader(&sb, float64(size), float64(size))

	for link := 1; link <= dynamo.Links; link++ {
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-opacity=\"0.5\" stroke-width=\"1\" d=\"", linkColors[link-1])
		for i, s := range samples {
			x, y := project(s.Vertices[link])
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	last := samples[len(samples)-1].Vertices
	for i := 0; i < dynamo.Links; i++ {
		x0, y0 := project(last[i])
		x1, y1 := project(last[i+1])
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#ffffff\" stroke-width=\"3\"/>\n", x0, y0, x1, y1)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", x1, y1, linkColors[i])
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
