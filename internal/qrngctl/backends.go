package qrngctl

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/malinowski-marek/qrng/pkg/client"
)

// Backends prints the execution resources visible to the account, so users
// can see what the least-busy selection will choose from.
func (a *App) Backends(ctx context.Context) error {
	return client.WithServiceClient(ctx, a.Params.ApiConnectionDetails, func(c *client.ServiceClient) error {
		backends, err := c.Backends(ctx)
		if err != nil {
			return err
		}
		sort.Slice(backends, func(i, j int) bool { return backends[i].Name < backends[j].Name })

		w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintf(w, "NAME\tQUBITS\tSTATUS\tSIMULATOR\tPENDING JOBS\n")
		for _, b := range backends {
			status := b.Status
			if status == "" && b.Operational {
				status = "online"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%t\t%d\n", b.Name, b.NumQubits, status, b.Simulator, b.PendingJobs)
		}
		return nil
	})
}
