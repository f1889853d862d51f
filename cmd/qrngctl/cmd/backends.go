package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/malinowski-marek/qrng/internal/qrngctl"
)

func backendsCmd(app *qrngctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List the execution backends visible to your account.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Backends(context.Background())
		},
	}
	return cmd
}
