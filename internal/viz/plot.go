package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/cirlab/cirsim/internal/dynamo"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// Trajectory renders one captioned line chart per state component. Captions
// come from names when provided, falling back to x0, x1, ...
func Trajectory(times []float64, states []dynamo.State, names []string) string {
	if len(states) == 0 {
		return ""
	}

	var b strings.Builder
	horizon := times[len(times)-1]

	for idx := range states[0] {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}

		caption := fmt.Sprintf("x%d", idx)
		if idx < len(names) {
			caption = names[idx]
		}

		b.WriteString(plot(data, fmt.Sprintf("%s vs time (0..%g)", caption, horizon)))
		b.WriteString("\n\n")
	}

	return b.String()
}

// Series renders the derived quantities of a run, one chart each.
func Series(times []float64, series []dynamo.Series) string {
	var b strings.Builder
	for _, s := range series {
		b.WriteString(plot(s.Values, s.Name))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Spectrum renders a power spectrum with the dominant frequency called out.
func Spectrum(ps []float64, caption string) string {
	// The upper bins of a smooth trajectory's spectrum are noise; show the
	// lower quarter like an oscilloscope would.
	view := ps
	if len(ps) >= 4 {
		view = ps[:len(ps)/4]
	}
	return plot(view, caption)
}

func plot(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}
