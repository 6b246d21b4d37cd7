package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/cardstack/cmd/navsim/internal/config"
)

type runOpts struct {
	tuning        string
	settleTimeout time.Duration
}

func newRunCmd() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Replay a scenario file",
		Long: `Replay a YAML or TOML scenario through the transition engine.

Each step is applied to the host stack and handed to the transitioner; unless
the step sets no_settle, frames are pumped until every animation and hook has
finished before the next step runs.`,
		Example: `  navsim run push-pop.yaml
  navsim run flip.toml --tuning spring.toml -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			sc, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if opts.tuning != "" {
				tuning, err := config.LoadTuning(opts.tuning)
				if err != nil {
					return err
				}
				sc.Tuning = *tuning
			}

			sim, err := newSimulator(logger, sc, opts.settleTimeout)
			if err != nil {
				return err
			}
			defer sim.close()

			prog := newProgress(logger)
			if err := sim.run(cmd.Context()); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Replayed %d steps of %s", len(sc.Steps), sc.Name))
			return sim.report(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.tuning, "tuning", "", "tuning file overriding the scenario's tuning section")
	cmd.Flags().DurationVar(&opts.settleTimeout, "settle-timeout", 10*time.Second, "virtual time a step may take to settle")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d routes, %d steps\n", sc.Name, len(sc.Routes), len(sc.Steps))
			return nil
		},
	}
}
