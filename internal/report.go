package internal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Reporter consumes scan results: it prints (or persists) one line per
// matched file and drives the progress display by polling the scanner's
// visited counter. It never feeds anything back into the traversal.
type Reporter struct {
	w       io.Writer
	file    *os.File
	outPath string
	bar     *progressbar.ProgressBar
	done    chan struct{}
}

// NewReporter writes results to outputPath, or to stdout when it is
// empty. With progress enabled a spinner on stderr follows the visited
// count until Close.
func NewReporter(outputPath string, stats *ScanStats, progress bool) (*Reporter, error) {
	r := &Reporter{w: os.Stdout, outPath: outputPath}
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("open output file: %w", err)
		}
		r.file = f
		r.w = f
	}
	if progress {
		r.bar = progressbar.NewOptions64(-1,
			progressbar.OptionSetDescription("Processing files"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		r.done = make(chan struct{})
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-r.done:
					return
				case <-ticker.C:
					_ = r.bar.Set64(stats.Visited.Load())
				}
			}
		}()
	}
	return r, nil
}

// Report writes one result line in the original output format.
func (r *Reporter) Report(res Result) {
	fmt.Fprintf(r.w, "Path: %s | Filename: %s | Matches: %v\n", res.Path, res.Name, res.Matches)
}

// Close stops the progress display and flushes the output file, if any.
func (r *Reporter) Close() error {
	if r.bar != nil {
		close(r.done)
		_ = r.bar.Finish()
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			return fmt.Errorf("close output file: %w", err)
		}
		logrus.Infof("Results written to %s", r.outPath)
	}
	return nil
}
