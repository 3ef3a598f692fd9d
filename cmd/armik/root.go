package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"zappem.net/pub/kinematics/armik/internal/config"
	"zappem.net/pub/kinematics/armik/internal/observability"
)

// app carries the state shared by the subcommands once the
// persistent pre-run has loaded it.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "armik",
		Short:         "Closed form inverse kinematics for a four axis arm",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./armik.yaml)")
	pf.Float64("upper", 0, "upper arm length l1")
	pf.Float64("lower", 0, "lower arm length l2")
	pf.Float64("min-dist", 0, "minimum shoulder to wrist distance")
	pf.Float64("twist", 0, "arm twist in degrees")
	pf.StringP("format", "f", "", "output format: text, json or yaml")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-file", "", "also write JSON logs to this file")

	for key, flag := range map[string]string{
		"arm.upper":       "upper",
		"arm.lower":       "lower",
		"arm.min_dist":    "min-dist",
		"twist":           "twist",
		"output.format":   "format",
		"logger.level":    "log-level",
		"logger.log_file": "log-file",
	} {
		// Binding a flag that exists cannot fail.
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newSolveCmd(a), newSweepCmd(a))
	return root
}

// load reads the configuration and builds the logger.
func (a *app) load() error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewStderr(cfg.Logger)
	a.logger.Debug("configuration loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.Float64("upper", cfg.Arm.Upper),
		zap.Float64("lower", cfg.Arm.Lower),
		zap.Float64("min_dist", cfg.Arm.MinDist),
		zap.Float64("twist_deg", cfg.Twist))
	return nil
}

// fail logs err and hands it back for cobra to return.
func (a *app) fail(msg string, err error) error {
	a.logger.Error(msg, zap.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}
