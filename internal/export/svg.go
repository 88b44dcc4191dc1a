package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

// panel is one rendered chart placed at (X, Y) in the composed figure.
type panel struct {
	X, Y int
	SVG  []byte
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderPanel renders a chart with the SVG backend.
func renderPanel(r renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compose nests the panels in one SVG document of the given size.
func compose(width, height int, panels []panel, extra string) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	for _, p := range panels {
		body := string(p.SVG)
		if strings.HasPrefix(body, "<?xml") {
			if i := strings.Index(body, "?>"); i >= 0 {
				body = body[i+2:]
			}
		}
		sb.WriteString(fmt.Sprintf("<g transform=\"translate(%d,%d)\">\n", p.X, p.Y))
		sb.WriteString(strings.TrimSpace(body))
		sb.WriteString("\n</g>\n")
	}

	sb.WriteString(extra)
	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// colorbar draws a vertical viridis strip for values in [lo, hi].
func colorbar(x, y, w, h int, lo, hi float64, label string) string {
	const steps = 32
	var sb strings.Builder

	cell := float64(h) / steps
	for i := 0; i < steps; i++ {
		// top of the bar is the maximum
		v := hi - (hi-lo)*(float64(i)+0.5)/steps
		c := chart.Viridis(v, lo, hi)
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%.2f" width="%d" height="%.2f" fill="#%02x%02x%02x"/>
`, x, float64(y)+float64(i)*cell, w, cell+0.5, c.R, c.G, c.B))
	}

	sb.WriteString(fmt.Sprintf(`<g font-family="sans-serif" font-size="10" fill="#333333">
<text x="%d" y="%d">%.2f</text>
<text x="%d" y="%d">%.2f</text>
<text x="%d" y="%d">%s</text>
</g>
`, x+w+3, y+8, hi, x+w+3, y+h, lo, x, y-6, label))

	return sb.String()
}
