package viz

import (
	"fmt"
	"strings"

	"github.com/cirlab/cirsim/internal/dynamo"
)

const (
	phaseWidth  = 70
	phaseHeight = 20
)

// PhasePortrait draws state component yIdx against xIdx as a connected curve
// on a braille canvas, with axis extents printed on the frame.
func PhasePortrait(states []dynamo.State, xIdx, yIdx int, xName, yName string) (string, error) {
	if len(states) == 0 {
		return "", fmt.Errorf("viz: no trajectory to plot")
	}
	if xIdx >= len(states[0]) || yIdx >= len(states[0]) {
		return "", fmt.Errorf("viz: state dimension %d too small for axes %d/%d", len(states[0]), xIdx, yIdx)
	}

	xMin, xMax := states[0][xIdx], states[0][xIdx]
	yMin, yMax := states[0][yIdx], states[0][yIdx]
	for _, x := range states {
		xMin = min(xMin, x[xIdx])
		xMax = max(xMax, x[xIdx])
		yMin = min(yMin, x[yIdx])
		yMax = max(yMax, x[yIdx])
	}

	xRange := xMax - xMin
	if xRange == 0 {
		xRange = 1
	}
	yRange := yMax - yMin
	if yRange == 0 {
		yRange = 1
	}

	canvas := NewCanvas(phaseWidth, phaseHeight)
	subW, subH := phaseWidth*2-1, phaseHeight*4-1

	px := func(s dynamo.State) (int, int) {
		x := int(float64(subW) * (s[xIdx] - xMin) / xRange)
		y := subH - int(float64(subH)*(s[yIdx]-yMin)/yRange)
		return x, y
	}

	prevX, prevY := px(states[0])
	for _, s := range states[1:] {
		x, y := px(s)
		canvas.DrawLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", yName, xName)
	fmt.Fprintf(&b, "y: [%.3g, %.3g]\n", yMin, yMax)
	b.WriteString(canvas.String())
	fmt.Fprintf(&b, "x: [%.3g, %.3g]\n", xMin, xMax)
	return b.String(), nil
}
