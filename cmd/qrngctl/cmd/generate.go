package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/malinowski-marek/qrng/internal/qrngctl"
)

// Generate random numbers on quantum hardware and print a results summary.
func generateCmd(app *qrngctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random numbers on quantum hardware.",
		Long: `Generate random numbers on quantum hardware.

Builds a circuit with one Hadamard gate per qubit, runs it on the least busy
operational backend, and decodes the measured bitstrings into integers in
[0, 2^qubits - 1]. One sample is produced per shot.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config := app.Params.ExecutorConfig
			var err error
			if config.Qubits, err = cmd.Flags().GetInt("qubits"); err != nil {
				return err
			}
			if config.Shots, err = cmd.Flags().GetInt("shots"); err != nil {
				return err
			}
			if config.OptimizationLevel, err = cmd.Flags().GetInt("opt-level"); err != nil {
				return err
			}
			if config.PollInterval, err = cmd.Flags().GetDuration("poll-interval"); err != nil {
				return err
			}
			if config.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
				return err
			}
			if app.Params.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
				return err
			}

			// Create a context that is cancelled on SIGINT/SIGTERM, so a
			// ctrl-C stops the wait for a queued job.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			stopSignal := make(chan os.Signal, 1)
			signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-ctx.Done():
					return
				case <-stopSignal:
					cancel()
				}
			}()

			_, err = app.Generate(ctx)
			return err
		},
	}

	cmd.Flags().IntP("qubits", "n", 6, "Number of qubits; values lie in [0, 2^qubits - 1].")
	cmd.Flags().Int("shots", 1024, "Number of circuit repetitions; one sample per shot.")
	cmd.Flags().Int("opt-level", 1, "Transpiler optimization level (0-2).")
	cmd.Flags().String("output", qrngctl.DefaultOutputPath, "Path of the histogram image, overwritten each run.")
	cmd.Flags().Duration("poll-interval", 5*time.Second, "Time between job status polls.")
	cmd.Flags().Duration("timeout", 0, "Give up waiting for the job after this long; 0 waits indefinitely.")

	return cmd
}
