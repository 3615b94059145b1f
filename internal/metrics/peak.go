// Package metrics provides scalar diagnostics accumulated over the reporting
// samples of a run.
package metrics

import (
	"math"

	"github.com/cirlab/cirsim/internal/dynamo"
)

// Peak tracks the maximum value reached by one state component.
type Peak struct {
	name    string
	index   int
	max     float64
	samples int
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index >= len(x) {
		return
	}
	if p.samples == 0 || x[p.index] > p.max {
		p.max = x[p.index]
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	if p.samples == 0 {
		return math.NaN()
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}
