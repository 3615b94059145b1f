package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cirlab/cirsim/internal/dynamo"
	"github.com/cirlab/cirsim/internal/integrators"
	"github.com/cirlab/cirsim/internal/sim"
)

// decay is dx/dt = -x with solution x(t) = x0 * exp(-t).
type decay struct{}

func (decay) StateDim() int { return 1 }
func (decay) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{-x[0]}
}

// blowup reaches a division-by-zero pole and emits non-finite derivatives.
type blowup struct{}

func (blowup) StateDim() int { return 1 }
func (blowup) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{1.0 / x[0]}
}

type lastSample struct {
	x dynamo.State
	t float64
	n int
}

func (l *lastSample) OnSample(x dynamo.State, t float64) {
	l.x = x.Clone()
	l.t = t
	l.n++
}

var _ = Describe("Solver", func() {
	var (
		solver *sim.Solver
		cfg    sim.Config
		ctx    context.Context
	)

	BeforeEach(func() {
		solver = sim.New(integrators.NewRK45())
		cfg = sim.DefaultConfig()
		cfg.Samples = 100
		ctx = context.Background()
	})

	It("returns exactly the requested number of samples", func() {
		result, err := solver.Solve(ctx, decay{}, dynamo.State{1}, 5.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.States).To(HaveLen(100))
		Expect(result.Times).To(HaveLen(100))
		Expect(result.Times[0]).To(Equal(0.0))
		Expect(result.Times[99]).To(BeNumerically("~", 5.0, 1e-12))
	})

	It("starts the trajectory at the initial state", func() {
		result, err := solver.Solve(ctx, decay{}, dynamo.State{3.5}, 1.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.States[0][0]).To(Equal(3.5))
	})

	It("tracks the analytic solution to tolerance", func() {
		result, err := solver.Solve(ctx, decay{}, dynamo.State{1}, 5.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		for i, x := range result.States {
			Expect(x[0]).To(BeNumerically("~", math.Exp(-result.Times[i]), 1e-5))
		}
	})

	It("repeats the initial state for a zero horizon", func() {
		result, err := solver.Solve(ctx, decay{}, dynamo.State{2}, 0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.States).To(HaveLen(100))
		for _, x := range result.States {
			Expect(x[0]).To(Equal(2.0))
		}
		Expect(result.Steps).To(BeZero())
	})

	It("fails fast on a dimension mismatch", func() {
		_, err := solver.Solve(ctx, decay{}, dynamo.State{1, 2}, 1.0, cfg)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("rejects a negative horizon", func() {
		_, err := solver.Solve(ctx, decay{}, dynamo.State{1}, -1.0, cfg)
		Expect(err).To(HaveOccurred())
	})

	It("surfaces the step ceiling instead of an unreliable trajectory", func() {
		cfg.Samples = 2
		cfg.MaxSteps = 3
		cfg.Tolerance = 1e-14

		result, err := solver.Solve(ctx, decay{}, dynamo.State{1}, 100.0, cfg)
		Expect(result).To(BeNil())
		Expect(err).To(MatchError(dynamo.ErrMaxSteps))

		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Time).To(BeNumerically(">=", 0))
	})

	It("surfaces non-finite states as a computation fault", func() {
		result, err := solver.Solve(ctx, blowup{}, dynamo.State{0}, 1.0, cfg)
		Expect(result).To(BeNil())
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
	})

	It("reproduces the same trajectory on identical inputs", func() {
		first, err := solver.Solve(ctx, decay{}, dynamo.State{1}, 5.0, cfg)
		Expect(err).NotTo(HaveOccurred())

		second, err := sim.New(integrators.NewRK45()).Solve(ctx, decay{}, dynamo.State{1}, 5.0, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Times).To(Equal(first.Times))
		Expect(second.States).To(Equal(first.States))
		Expect(second.Steps).To(Equal(first.Steps))
	})

	It("notifies observers of every reporting sample", func() {
		obs := &lastSample{}
		solver.AddObserver(obs)

		_, err := solver.Solve(ctx, decay{}, dynamo.State{1}, 5.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.n).To(Equal(100))
		Expect(obs.t).To(BeNumerically("~", 5.0, 1e-12))
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := solver.Solve(canceled, decay{}, dynamo.State{1}, 5.0, cfg)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("integrates with fixed-step integrators by substepping each interval", func() {
		fixed := sim.New(integrators.NewRK4())
		cfg.InitialDt = 0.001

		result, err := fixed.Solve(ctx, decay{}, dynamo.State{1}, 2.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.States[99][0]).To(BeNumerically("~", math.Exp(-2.0), 1e-6))
	})
})
