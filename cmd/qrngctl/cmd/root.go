package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
	"github.com/malinowski-marek/qrng/internal/qrngctl"
	"github.com/malinowski-marek/qrng/pkg/client"
)

var cfgFile string

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qrngctl",
		Short: "qrngctl generates random numbers by measuring qubits on remote quantum hardware.",
		Long: `qrngctl generates random numbers by measuring qubits on remote quantum hardware.

It places a register of qubits in superposition, runs the circuit on the least
busy operational backend of the configured quantum service, and decodes the
measured bit patterns into integers.

Persistent config can be saved in a config file so it doesn't have to be
specified every command. Example structure:

serviceUrl: https://quantum.example.com
token: <your API token>

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.qrng.yaml is used. The token can also be supplied
through the QRNG_TOKEN environment variable.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	client.AddServiceConnectionCommandlineArgs(cmd)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.qrng.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		generateCmd(qrngctl.New()),
		backendsCmd(qrngctl.New()),
		versionCmd(qrngctl.New()),
	)

	return cmd
}

// Execute runs the root command and terminates the process with a non-zero
// status and troubleshooting hints if the pipeline failed.
func Execute() {
	cmd := RootCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		log.Errorf("Error occurred: %s", err)
		printTroubleshooting(err)
		os.Exit(1)
	}
}

func printTroubleshooting(err error) {
	log.Info("")
	log.Info("Troubleshooting tips:")
	log.Info("1. Check your API token is correct (--token, QRNG_TOKEN, or the config file)")
	log.Info("2. Ensure you have remaining execution-time allowance on your plan")
	log.Info("3. Check the quantum service status page")
	switch {
	case qrngerrors.IsNoResourceAvailable(err):
		log.Info("4. Hardware backends may be down for maintenance; retry later or inspect 'qrngctl backends'")
	case qrngerrors.IsInvalidArgument(err):
		log.Info("4. Review the flag values passed to this command")
	}
}

func initParams(cmd *cobra.Command, params *qrngctl.Params) error {
	if err := client.LoadCommandlineArgs(cfgFile); err != nil {
		return err
	}
	params.ApiConnectionDetails = client.ExtractCommandlineConnectionDetails()
	return nil
}
