// Command hdrstat records a column of integers and reports percentiles for
// them. It exists to exercise the hdrhistogram library end to end, not as a
// production load-testing tool.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/benhoyt-labs/hdrhistogram"
)

var (
	highestTrackableValue uint64
	significantDigits     int
	expectedInterval      uint64
	percentiles           []float64
	verbose               bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("hdrstat failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hdrstat [file]",
		Short: "Record a column of integers and report HDR histogram percentiles",
		Long: `hdrstat reads one non-negative integer per line from a file (or stdin
if no file is given), records each one into an hdrhistogram.Histogram, and
prints the resulting percentile table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
	}

	root.Flags().Uint64Var(&highestTrackableValue, "highest", 3_600_000_000,
		"highest trackable value")
	root.Flags().IntVar(&significantDigits, "digits", 3,
		"significant decimal digits of precision to preserve (1-5)")
	root.Flags().Uint64Var(&expectedInterval, "expected-interval", 0,
		"expected sampling interval; when > 0, corrects for coordinated omission")
	root.Flags().Float64SliceVar(&percentiles, "percentiles",
		[]float64{50, 90, 99, 99.9, 99.99, 100},
		"comma-separated list of percentiles to report")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log rejected and synthesized samples")

	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	r, closeFn, err := openInput(args)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer closeFn()

	h, err := hdrhistogram.New(highestTrackableValue, significantDigits)
	if err != nil {
		return errors.Wrap(err, "building histogram")
	}
	log.WithField("layout", h.String()).Debug("histogram constructed")

	recorded, rejected, err := recordAll(h, r)
	if err != nil {
		return errors.Wrap(err, "recording input")
	}
	log.WithFields(log.Fields{
		"recorded": recorded,
		"rejected": rejected,
		"total":    h.GetTotalCount(),
	}).Info("finished recording")

	printReport(cmd.OutOrStdout(), h)
	return nil
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// recordAll records one value per non-blank line of r, returning the number
// of values recorded (including any synthesized by coordinated-omission
// correction) and the number of lines rejected as malformed or out of
// range.
func recordAll(h *hdrhistogram.Histogram, r io.Reader) (recorded, rejected uint64, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v, parseErr := strconv.ParseUint(line, 10, 64)
		if parseErr != nil {
			rejected++
			if verbose {
				log.WithField("line", line).Warn("skipping unparsable value")
			}
			continue
		}

		before := h.GetTotalCount()
		var recErr error
		if expectedInterval > 0 {
			recErr = h.RecordCorrectedValue(v, expectedInterval)
		} else {
			recErr = h.RecordValue(v)
		}
		if recErr != nil {
			rejected++
			if verbose {
				log.WithError(recErr).WithField("value", v).Warn("skipping out-of-range value")
			}
			continue
		}
		added := h.GetTotalCount() - before
		if verbose && added > 1 {
			log.WithFields(log.Fields{"value": v, "synthesized": added - 1}).Info("synthesized samples for coordinated omission")
		}
		recorded += added
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return recorded, rejected, scanErr
	}
	return recorded, rejected, nil
}

func printReport(w io.Writer, h *hdrhistogram.Histogram) {
	fmt.Fprintf(w, "count: %d  min: %d  max: %d\n", h.GetTotalCount(), h.GetMinValue(), h.GetMaxValue())
	if mean, err := h.GetMeanValue(); err == nil {
		fmt.Fprintf(w, "mean: %.2f\n", mean)
	}
	for _, p := range percentiles {
		fmt.Fprintf(w, "p%-7g %d\n", p, h.GetValueAtPercentile(p))
	}
}
