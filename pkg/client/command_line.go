package client

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AddServiceConnectionCommandlineArgs registers the connection flags shared
// by every subcommand.
func AddServiceConnectionCommandlineArgs(rootCmd *cobra.Command) {
	addConnectionFlags(rootCmd.PersistentFlags())
}

func addConnectionFlags(flags *pflag.FlagSet) {
	flags.String("serviceUrl", "http://localhost:8080", "specify quantum service url")
	flags.String("token", "", "API token (falls back to QRNG_TOKEN or the config file; never hard-code it)")
	viper.BindPFlag("serviceUrl", flags.Lookup("serviceUrl"))
	viper.BindPFlag("token", flags.Lookup("token"))
}

// LoadCommandlineArgs merges connection settings from, in increasing
// precedence: the $HOME/.qrng.yaml config file, QRNG_* environment
// variables, and command line flags.
func LoadCommandlineArgs(cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".qrng")
	}

	viper.SetEnvPrefix("QRNG")
	viper.AutomaticEnv() // read in environment variables that match

	err := viper.MergeInConfig()
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// The default .qrng file does not have to exist, so do nothing
		case *os.PathError:
			// Same for an explicitly provided but missing file path
		default:
			return errors.Wrapf(err, "error reading config file %s", viper.ConfigFileUsed())
		}
	}
	return nil
}

// ExtractCommandlineConnectionDetails reads the merged connection settings.
func ExtractCommandlineConnectionDetails() *ApiConnectionDetails {
	apiConnectionDetails := &ApiConnectionDetails{}
	viper.Unmarshal(apiConnectionDetails)
	return apiConnectionDetails
}
