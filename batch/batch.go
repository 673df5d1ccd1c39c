// Package batch denoises a directory of WAV files with one method.
//
// Files are processed in name order. A file that fails to load, denoise or
// save is recorded and skipped; the remaining files are still processed and
// every failure is reported in the returned multierror.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-denoise/audioio"
	"github.com/cwbudde/algo-denoise/denoise"
	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// DefaultPattern selects the files processed when Config.Pattern is empty.
const DefaultPattern = "*.wav"

// ErrNoInput is returned when the input directory is missing or not a
// directory.
var ErrNoInput = errors.New("batch: input directory not found")

// Config names the directories and method of a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Method    denoise.Method
	// Pattern is a filepath.Match glob applied to names in InputDir.
	Pattern string
}

// FileResult is the outcome of one file.
type FileResult struct {
	Input  string
	Output string
	*denoise.Result
}

// Failure records a file that could not be processed.
type Failure struct {
	Input string
	Err   error
}

// Summary aggregates a batch run.
type Summary struct {
	Total    int
	Results  []FileResult
	Failures []Failure
	// AverageImprovement is the mean SNR improvement over Results, 0 when
	// no file succeeded.
	AverageImprovement float64
	// Best and Worst point into Results and are nil when it is empty.
	Best  *FileResult
	Worst *FileResult
}

// EventKind tells what happened to a file.
type EventKind int

const (
	// FileStarted is sent before a file is loaded.
	FileStarted EventKind = iota
	// FileDone is sent after a file was saved.
	FileDone
	// FileFailed is sent when a file was skipped.
	FileFailed
)

func (k EventKind) String() string {
	switch k {
	case FileStarted:
		return "started"
	case FileDone:
		return "done"
	case FileFailed:
		return "failed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports progress. Index counts from 0 up to Total-1.
type Event struct {
	Kind   EventKind
	Index  int
	Total  int
	Input  string
	Result *FileResult
	Err    error
}

type options struct {
	progress func(Event)
	run      []denoise.RunOption
}

// Option configures Process.
type Option func(*options)

// WithProgress calls fn for every Event. fn runs on the processing
// goroutine and should return quickly.
func WithProgress(fn func(Event)) Option {
	return func(o *options) { o.progress = fn }
}

// WithRunOptions forwards opts to every denoise.Run.
func WithRunOptions(opts ...denoise.RunOption) Option {
	return func(o *options) { o.run = append(o.run, opts...) }
}

// OutputName returns the file name written for input by method:
// "<name>_denoised_<method><ext>".
func OutputName(input, method string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_denoised_" + method + ext
}

// File denoises one WAV file with m and writes the result to output,
// creating output's directory when needed.
func File(ctx context.Context, input, output string, m denoise.Method, opts ...denoise.RunOption) (_ *FileResult, _err error) {
	logger.Tracef(ctx, "File, input:%s", input)
	defer func() { logger.Tracef(ctx, "/File, input:%s: %v", input, _err) }()

	sig, err := audioio.Load(input)
	if err != nil {
		return nil, err
	}
	res, err := denoise.Run(ctx, sig, m, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	if err := audioio.Save(output, res.Output); err != nil {
		return nil, err
	}
	return &FileResult{Input: input, Output: output, Result: res}, nil
}

// Files lists the names in dir matching pattern, sorted.
func Files(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("batch: pattern %q: %w", pattern, err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	files := matches[:0]
	for _, path := range matches {
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Process denoises every matching file of cfg.InputDir into cfg.OutputDir.
// The returned Summary is valid even when the error is not nil; the error
// is a *multierror.Error listing all failed files, or a setup error.
func Process(ctx context.Context, cfg Config, opts ...Option) (_ *Summary, _err error) {
	logger.Tracef(ctx, "Process, in:%s, out:%s", cfg.InputDir, cfg.OutputDir)
	defer func() { logger.Tracef(ctx, "/Process: %v", _err) }()

	if cfg.Method == nil {
		return nil, fmt.Errorf("batch: no method: %w", core.ErrUnsupportedMethod)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	emit := func(e Event) {
		if o.progress != nil {
			o.progress(e)
		}
	}

	files, err := Files(cfg.InputDir, cfg.Pattern)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	sum := &Summary{Total: len(files)}
	var mErr *multierror.Error
	for i, input := range files {
		if err := ctx.Err(); err != nil {
			mErr = multierror.Append(mErr, err)
			break
		}
		emit(Event{Kind: FileStarted, Index: i, Total: len(files), Input: input})

		output := filepath.Join(cfg.OutputDir, OutputName(input, cfg.Method.Name()))
		res, err := File(ctx, input, output, cfg.Method, o.run...)
		if err != nil {
			logger.Debugf(ctx, "skipping %s: %v", input, err)
			sum.Failures = append(sum.Failures, Failure{Input: input, Err: err})
			mErr = multierror.Append(mErr, err)
			emit(Event{Kind: FileFailed, Index: i, Total: len(files), Input: input, Err: err})
			continue
		}
		sum.Results = append(sum.Results, *res)
		emit(Event{Kind: FileDone, Index: i, Total: len(files), Input: input, Result: res})
	}
	sum.aggregate()
	logger.Debugf(ctx, "batch: %d/%d files, %.2f dB average",
		len(sum.Results), sum.Total, sum.AverageImprovement)
	return sum, mErr.ErrorOrNil()
}

func (s *Summary) aggregate() {
	if len(s.Results) == 0 {
		return
	}
	var total float64
	best, worst := 0, 0
	for i, r := range s.Results {
		total += r.Improvement
		if r.Improvement > s.Results[best].Improvement {
			best = i
		}
		if r.Improvement < s.Results[worst].Improvement {
			worst = i
		}
	}
	s.AverageImprovement = total / float64(len(s.Results))
	if math.IsNaN(s.AverageImprovement) {
		s.AverageImprovement = 0
	}
	s.Best = &s.Results[best]
	s.Worst = &s.Results[worst]
}
