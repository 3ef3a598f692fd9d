package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/armik/internal/sweep"
)

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [--] x y z",
		Short: "Solve the joint angles for one wrist goal",
		Long: `Solve the joint angles that put the wrist at (x, y, z) relative to
the shoulder. Put -- before the coordinates when any is negative.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c [3]float64
			for i, s := range args {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("coordinate %q: %w", s, err)
				}
				c[i] = f
			}
			return a.run(cmd, []geom.Vector{geom.V(c[:]...)}, 1, 0)
		},
	}
}

// run solves goals with the loaded configuration and prints the
// result.
func (a *app) run(cmd *cobra.Command, goals []geom.Vector, workers int, rate float64) error {
	g, err := a.cfg.Geometry()
	if err != nil {
		return a.fail("arm geometry", err)
	}
	r := &sweep.Runner{
		Geometry: g,
		Twist:    a.cfg.TwistAngle(),
		Workers:  workers,
		Rate:     rate,
		Logger:   a.logger,
	}
	samples, err := r.Run(cmd.Context(), goals)
	if err != nil {
		return a.fail("solve failed", err)
	}
	return write(cmd.OutOrStdout(), a.cfg.Output.Format, samples)
}
