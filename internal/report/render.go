package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

// RenderHistogram persists a bar chart of the outcome distribution to path,
// overwriting any prior file. It tries a PNG chart first and falls back to a
// hand-built SVG next to it; it returns ErrRenderingFailed only if both
// tiers fail. Callers treat that error as a warning, never a run failure.
func RenderHistogram(counts domain.Counts, backendName, path string) error {
	bars, err := sortedBars(counts)
	if err != nil {
		return errors.WithStack(&qrngerrors.ErrRenderingFailed{Path: path, Causes: err})
	}

	pngErr := renderPNG(bars, backendName, path)
	if pngErr == nil {
		log.Infof("Histogram saved as %s", path)
		return nil
	}
	log.Warnf("Chart renderer failed (%s), falling back to direct SVG rendering", pngErr)

	svgPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	svgErr := renderSVG(bars, backendName, svgPath)
	if svgErr == nil {
		log.Infof("Histogram saved as %s", svgPath)
		return nil
	}

	var result *multierror.Error
	result = multierror.Append(result, pngErr, svgErr)
	return errors.WithStack(&qrngerrors.ErrRenderingFailed{Path: path, Causes: result.ErrorOrNil()})
}

type bar struct {
	value uint64
	count int
}

func sortedBars(counts domain.Counts) ([]bar, error) {
	bars := make([]bar, 0, len(counts))
	for bits, count := range counts {
		value, err := strconv.ParseUint(bits, 2, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "outcome %q is not a binary string", bits)
		}
		bars = append(bars, bar{value: value, count: count})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].value < bars[j].value })
	return bars, nil
}

func renderPNG(bars []bar, backendName, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Quantum Random Number Distribution (Backend: %s)", backendName)
	p.X.Label.Text = "Outcome value"
	p.Y.Label.Text = "Frequency"

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = float64(b.count)
		labels[i] = strconv.FormatUint(b.value, 10)
	}

	chart, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return errors.Wrap(err, "error building bar chart")
	}
	chart.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	chart.LineStyle.Width = vg.Length(0)
	p.Add(chart)
	p.NominalX(labels...)

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "error saving chart to %s", path)
	}
	return nil
}

// renderSVG writes a minimal bar chart by hand, with no dependency on the
// plotting stack, so a broken font cache or image backend cannot take the
// whole report down.
func renderSVG(bars []bar, backendName, path string) error {
	const (
		width     = 960
		height    = 480
		marginX   = 60
		marginTop = 50
		marginBot = 40
	)

	maxCount := 0
	for _, b := range bars {
		if b.count > maxCount {
			maxCount = b.count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&svg, `<rect width="%d" height="%d" fill="white"/>`+"\n", width, height)
	fmt.Fprintf(&svg, `<text x="%d" y="24" font-family="sans-serif" font-size="16" text-anchor="middle">Quantum Random Number Distribution (Backend: %s)</text>`+"\n",
		width/2, backendName)

	plotWidth := width - 2*marginX
	plotHeight := height - marginTop - marginBot
	if len(bars) > 0 {
		slot := float64(plotWidth) / float64(len(bars))
		barWidth := slot * 0.8
		for i, b := range bars {
			barHeight := float64(plotHeight) * float64(b.count) / float64(maxCount)
			x := float64(marginX) + slot*float64(i) + (slot-barWidth)/2
			y := float64(marginTop) + float64(plotHeight) - barHeight
			fmt.Fprintf(&svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#1f77b4"/>`+"\n", x, y, barWidth, barHeight)
			fmt.Fprintf(&svg, `<text x="%.1f" y="%d" font-family="sans-serif" font-size="11" text-anchor="middle">%d</text>`+"\n",
				x+barWidth/2, height-marginBot+16, b.value)
		}
	}
	fmt.Fprintf(&svg, `<text x="%d" y="%d" font-family="sans-serif" font-size="13" text-anchor="middle">Outcome value</text>`+"\n",
		width/2, height-8)
	svg.WriteString("</svg>\n")

	if err := os.WriteFile(path, []byte(svg.String()), 0o644); err != nil {
		return errors.Wrapf(err, "error writing fallback chart to %s", path)
	}
	return nil
}
