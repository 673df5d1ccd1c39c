// Command denoise removes noise from mono WAV files.
//
// Usage:
//
//	denoise file input.wav [output.wav] [-m spectral|wavelet|fir|freq] [-c 256]
//	denoise batch in/ out/ [-m method] [-p "*.wav"] [--tui]
//	denoise preview input.wav [-m method]
//	denoise demo [--seed 1] [--out-dir demo/]
//	denoise methods
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
)

// CLI defines the command-line interface
type CLI struct {
	LogLevel string `name:"log-level" default:"warning" help:"Log level (trace, debug, info, warning, error)."`

	File    FileCmd    `cmd:"" help:"Denoise one WAV file."`
	Batch   BatchCmd   `cmd:"" help:"Denoise every matching WAV file of a directory."`
	Preview PreviewCmd `cmd:"" help:"Score a method on the first samples of a file without writing anything."`
	Demo    DemoCmd    `cmd:"" help:"Compare all methods on a synthetic noisy sine."`
	Methods MethodsCmd `cmd:"" help:"List methods and FIR windows."`
}

// Globals is passed to every command's Run.
type Globals struct {
	Ctx context.Context
}

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("denoise"),
		kong.Description("Audio denoiser: spectral subtraction, wavelet shrinkage and FIR/FFT band filters."),
		kong.UsageOnError(),
	)

	var level logger.Level
	if err := level.Set(cli.LogLevel); err != nil {
		kctx.Fatalf("invalid --log-level %q: %v", cli.LogLevel, err)
	}
	l := logrus.Default().WithLevel(level)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}

	err := kctx.Run(&Globals{Ctx: ctx})
	belt.Flush(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
