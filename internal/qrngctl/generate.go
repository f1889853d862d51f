package qrngctl

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	mathrand "math/rand"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"

	"github.com/malinowski-marek/qrng/internal/circuit"
	"github.com/malinowski-marek/qrng/internal/decode"
	"github.com/malinowski-marek/qrng/internal/executor"
	"github.com/malinowski-marek/qrng/internal/report"
	"github.com/malinowski-marek/qrng/pkg/client"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

// Generate runs the full pipeline: connect, build the circuit, execute it on
// the least busy hardware backend, decode the measurement counts into a
// shuffled sample set, and report statistics plus a frequency chart.
//
// The sample set is returned so the App can be used as a library. A
// rendering failure is logged and swallowed; any other failure aborts the
// run.
func (a *App) Generate(ctx context.Context) (domain.Samples, error) {
	config := a.Params.ExecutorConfig
	if err := config.Validate(); err != nil {
		return nil, err
	}

	circ, err := circuit.NewRandomCircuit(config.Qubits)
	if err != nil {
		return nil, err
	}
	log.Infof("Created circuit with %d qubits; values will lie in [0, %d]", config.Qubits, circ.DomainMax())
	log.Debugf("Circuit diagram:\n%s", circ.Draw())

	var samples domain.Samples
	err = client.WithServiceClient(ctx, a.Params.ApiConnectionDetails, func(c *client.ServiceClient) error {
		result, err := executor.Execute(ctx, c, config, circ)
		if err != nil {
			return err
		}
		samples, err = a.decode(result.Counts)
		if err != nil {
			return err
		}
		summary, err := report.Summarize(samples, result.Counts, config.Qubits)
		if err != nil {
			return err
		}
		a.printSummary(summary, result.Backend, samples)

		if err := report.RenderHistogram(result.Counts, result.Backend, a.Params.OutputPath); err != nil {
			// Rendering is presentation only; the run still succeeded.
			log.Warnf("Skipping histogram: %s", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// decode expands the counts, seeding the presentation shuffle from the
// App's randomness source.
func (a *App) decode(counts domain.Counts) (domain.Samples, error) {
	n := a.Params.ExecutorConfig.Qubits
	var seed [8]byte
	if _, err := io.ReadFull(a.Random, seed[:]); err != nil {
		return decode.Expand(counts, n)
	}
	rng := mathrand.New(mathrand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
	return decode.ExpandWithRand(counts, n, rng)
}

func (a *App) printSummary(summary *report.Summary, backendName string, samples domain.Samples) {
	fmt.Fprintf(a.Out, "Backend used: %s\n", backendName)

	w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
	fmt.Fprintf(w, "Total samples:\t%d\n", summary.Count)
	fmt.Fprintf(w, "Number range:\t0 to %d\n", summary.DomainMax)
	fmt.Fprintf(w, "Distinct values:\t%d\n", summary.Distinct)
	fmt.Fprintf(w, "Min:\t%d\n", summary.Min)
	fmt.Fprintf(w, "Max:\t%d\n", summary.Max)
	fmt.Fprintf(w, "Mean:\t%.2f\n", summary.Mean)
	w.Flush()

	preview := samples
	if len(preview) > 20 {
		preview = preview[:20]
	}
	fmt.Fprintf(a.Out, "Sample (first %d): %v\n", len(preview), []uint64(preview))

	if len(summary.Top) > 0 {
		fmt.Fprintf(a.Out, "Most frequent outcomes:\n")
		w = tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
		fmt.Fprintf(w, "BITS\tVALUE\tCOUNT\tSHARE\n")
		for _, outcome := range summary.Top {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", outcome.Bits, outcome.Value, outcome.Count, outcome.Percent)
		}
		w.Flush()
	}
}
