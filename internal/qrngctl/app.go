package qrngctl

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/malinowski-marek/qrng/internal/executor"
	"github.com/malinowski-marek/qrng/pkg/client"
)

// DefaultOutputPath is where the frequency chart is written unless the
// caller overrides it. The file is overwritten on every run.
const DefaultOutputPath = "qrng_results.png"

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the application's output.
	Out io.Writer
	// Source of randomness for the presentation shuffle. Tests can use a
	// mocked random source in order to provide deterministic testing behavior.
	Random io.Reader
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	ApiConnectionDetails *client.ApiConnectionDetails
	ExecutorConfig       *executor.Config
	// Path of the frequency chart written by the reporter.
	OutputPath string
}

// New instantiates an App with default parameters, including standard output
// and cryptographically secure random source.
func New() *App {
	return &App{
		Params: &Params{
			ApiConnectionDetails: &client.ApiConnectionDetails{},
			ExecutorConfig:       executor.DefaultConfig(),
			OutputPath:           DefaultOutputPath,
		},
		Out:    os.Stdout,
		Random: rand.Reader,
	}
}
