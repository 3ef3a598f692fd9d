// Package sweep solves the arm for a sequence of goals, such as a
// wrist driven along a straight line, the way a control loop would
// feed the solver one goal per cycle.
package sweep

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/armik"
)

// Sample is the solution for one goal.
type Sample struct {
	Index int
	// Goal is the commanded wrist position and Target the one the
	// joints actually reach. They differ only when Clamped.
	Goal, Target geom.Vector
	Clamped      bool
	Joints       armik.Joints
}

// Line returns count goals start, start+step, start+2*step, ...
func Line(start, step geom.Vector, count int) []geom.Vector {
	if count < 0 {
		count = 0
	}
	goals := make([]geom.Vector, count)
	for i := range goals {
		goals[i] = start.AddS(step, float64(i))
	}
	return goals
}

// Runner solves goals for one arm at a fixed twist.
type Runner struct {
	Geometry armik.Geometry
	Twist    geom.Angle
	// Workers bounds the number of goals solved at once. Values
	// below one mean one.
	Workers int
	// Rate paces the goals handed to the workers, in goals per
	// second. Zero or less means as fast as they can be solved.
	Rate float64
	// Logger may be nil.
	Logger *zap.Logger
}

// Run solves every goal and returns the samples in goal order. The
// first failure, or cancellation of ctx, stops the run.
func (r *Runner) Run(ctx context.Context, goals []geom.Vector) ([]Sample, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	var pace *rate.Limiter
	if r.Rate > 0 {
		pace = rate.NewLimiter(rate.Limit(r.Rate), 1)
	}

	samples := make([]Sample, len(goals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var paceErr error
	for i, goal := range goals {
		if pace != nil {
			if paceErr = pace.Wait(gctx); paceErr != nil {
				break
			}
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := r.solve(i, goal)
			if err != nil {
				return err
			}
			if s.Clamped {
				logger.Warn("goal out of reach, clamped",
					zap.Int("index", i),
					zap.Float64s("goal", goal),
					zap.Float64s("target", s.Target))
			}
			logger.Debug("solved", zap.Int("index", i), zap.Stringer("joints", s.Joints))
			samples[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if paceErr != nil {
		return nil, paceErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("sweep complete", zap.Int("samples", len(samples)), zap.Int("workers", workers))
	return samples, nil
}

func (r *Runner) solve(i int, goal geom.Vector) (Sample, error) {
	s, err := r.Geometry.Solve(r.Twist, goal)
	if err != nil {
		return Sample{}, fmt.Errorf("goal %d %v: %w", i, goal, err)
	}
	return Sample{
		Index:   i,
		Goal:    goal,
		Target:  s.Target,
		Clamped: s.Clamped,
		Joints:  s.Joints,
	}, nil
}
