package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zappem.net/pub/kinematics/armik/internal/config"
	"zappem.net/pub/kinematics/armik/internal/sweep"
)

func newSweepCmd(a *app) *cobra.Command {
	var start, step []float64
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve a straight line of wrist goals",
		Long: `Solve the goals start, start+step, ... start+(count-1)*step, in
parallel, and print them in order. Goals out of reach are clamped
and reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Sweep
			if err := override(&sc.Start, "start", start); err != nil {
				return err
			}
			if err := override(&sc.Step, "step", step); err != nil {
				return err
			}
			goals := sweep.Line(sc.Start.Vector(), sc.Step.Vector(), sc.Count)
			return a.run(cmd, goals, sc.Workers, sc.Rate)
		},
	}

	f := cmd.Flags()
	f.IntP("count", "n", 0, "number of goals")
	f.IntP("workers", "w", 0, "goals solved at once")
	f.Float64("rate", 0, "goals per second, 0 for unpaced")
	f.Float64SliceVar(&start, "start", nil, "first goal as x,y,z")
	f.Float64SliceVar(&step, "step", nil, "step between goals as x,y,z")
	_ = a.v.BindPFlag("sweep.count", f.Lookup("count"))
	_ = a.v.BindPFlag("sweep.workers", f.Lookup("workers"))
	_ = a.v.BindPFlag("sweep.rate", f.Lookup("rate"))
	return cmd
}

// override replaces v with the flag value xyz, when one was given.
func override(v *config.Vec, name string, xyz []float64) error {
	switch len(xyz) {
	case 0:
		return nil
	case 3:
		*v = config.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		return nil
	}
	return fmt.Errorf("--%s wants x,y,z, got %d values", name, len(xyz))
}
