// Package report renders denoising results for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-denoise/batch"
	"github.com/cwbudde/algo-denoise/denoise"
)

// Color palette
var (
	accentColor = lipgloss.Color("#2E86C1")
	mutedColor  = lipgloss.Color("#888888")
	goodColor   = lipgloss.Color("#00AA00")
	badColor    = lipgloss.Color("#A40000")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	RuleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(26)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(badColor)
)

const ruleWidth = 50

// DB formats a level in dB, spelling out infinities.
func DB(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf dB"
	case math.IsInf(v, -1):
		return "-inf dB"
	case math.IsNaN(v):
		return "n/a"
	default:
		return fmt.Sprintf("%.2f dB", v)
	}
}

// Gain formats an SNR change with its sign, green for gains and red for
// losses.
func Gain(v float64) string {
	s := DB(v)
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		s = fmt.Sprintf("%+.2f dB", v)
	}
	switch {
	case v > 0:
		return lipgloss.NewStyle().Foreground(goodColor).Render(s)
	case v < 0:
		return lipgloss.NewStyle().Foreground(badColor).Render(s)
	default:
		return s
	}
}

func heading(w io.Writer, title string) {
	rule := RuleStyle.Render(strings.Repeat("=", ruleWidth))
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, TitleStyle.Render(title), rule)
}

func row(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s%s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// Result prints one run. input and output may be empty.
func Result(w io.Writer, input, output string, r *denoise.Result) {
	heading(w, "PROCESSING COMPLETE")
	if input != "" {
		row(w, "Input file", input)
	}
	if output != "" {
		row(w, "Output file", output)
	}
	row(w, "Method", strings.ToUpper(r.Method))
	row(w, "Sample rate", fmt.Sprintf("%d Hz", r.SampleRate))
	row(w, "Duration", fmt.Sprintf("%.2f seconds", r.Duration))
	row(w, "Input SNR", DB(r.ReferenceSNR))
	row(w, "Output SNR", DB(r.DenoisedSNR))
	row(w, "SNR improvement", Gain(r.Improvement))
	row(w, "RMS in / out", fmt.Sprintf("%s / %s", DB(r.Levels.Before.RMS_dB), DB(r.Levels.After.RMS_dB)))
	row(w, "Peak in / out", fmt.Sprintf("%s / %s", DB(r.Levels.Before.Peak_dB), DB(r.Levels.After.Peak_dB)))
	row(w, "Processing time", r.Elapsed.String())
}

// Summary prints the outcome of a batch run.
func Summary(w io.Writer, s *batch.Summary) {
	heading(w, "BATCH PROCESSING SUMMARY")
	row(w, "Total files", fmt.Sprint(s.Total))
	row(w, "Successfully processed", fmt.Sprint(len(s.Results)))
	row(w, "Failed", fmt.Sprint(len(s.Failures)))

	if len(s.Results) > 0 {
		row(w, "Average improvement", Gain(s.AverageImprovement))
		row(w, "Best improvement", fmt.Sprintf("%s (%s)", Gain(s.Best.Improvement), filepath.Base(s.Best.Input)))
		row(w, "Worst improvement", fmt.Sprintf("%s (%s)", Gain(s.Worst.Improvement), filepath.Base(s.Worst.Input)))
	}
	for _, f := range s.Failures {
		fmt.Fprintf(w, "%s %s: %v\n", ErrorStyle.Render("✗"), filepath.Base(f.Input), f.Err)
	}
}

// Comparison is one line of a method comparison table.
type Comparison struct {
	Label  string
	Result *denoise.Result
	Err    error
}

// Table prints one line per comparison, aligned on the label.
func Table(w io.Writer, title string, rows []Comparison) {
	heading(w, title)
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}
	label := lipgloss.NewStyle().Width(width + 2)
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(w, "%s%s %v\n", label.Render(r.Label), ErrorStyle.Render("error:"), r.Err)
			continue
		}
		fmt.Fprintf(w, "%s%s  %s  (%v)\n", label.Render(r.Label),
			ValueStyle.Render(DB(r.Result.DenoisedSNR)), Gain(r.Result.Improvement), r.Result.Elapsed)
	}
}
