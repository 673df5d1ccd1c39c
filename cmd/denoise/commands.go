package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-denoise/audioio"
	"github.com/cwbudde/algo-denoise/batch"
	"github.com/cwbudde/algo-denoise/denoise"
	"github.com/cwbudde/algo-denoise/dsp/window"
	"github.com/cwbudde/algo-denoise/internal/report"
	"github.com/cwbudde/algo-denoise/internal/tui"
)

// MethodFlags selects and tunes the denoising method.
type MethodFlags struct {
	Method    string `short:"m" enum:"spectral,wavelet,fir,freq" default:"spectral" help:"Denoising method (${enum})."`
	ChunkSize int    `short:"c" default:"256" help:"Chunk size for chunked methods."`
	Window    string `default:"hamming" help:"FIR design window."`
	Centered  bool   `help:"Compensate the FIR group delay."`
	Workers   int    `default:"1" help:"Chunks processed concurrently."`
}

func (f MethodFlags) build() (denoise.Method, error) {
	m, err := denoise.ParseMethod(f.Method)
	if err != nil {
		return nil, err
	}
	if f.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", f.ChunkSize)
	}
	m = denoise.WithChunkSize(m, f.ChunkSize)
	if fir, ok := m.(denoise.FIR); ok {
		w, err := window.ParseType(f.Window)
		if err != nil {
			return nil, err
		}
		fir.Spec.Window = w
		fir.Centered = f.Centered
		m = fir
	}
	return m, nil
}

func (f MethodFlags) runOptions() []denoise.RunOption {
	return []denoise.RunOption{denoise.WithWorkers(f.Workers)}
}

// FileCmd denoises one file.
type FileCmd struct {
	Input       string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output      string `arg:"" optional:"" help:"Output WAV file (default: <name>_denoised_<method>.wav next to the input)."`
	MethodFlags `embed:""`
}

func (c *FileCmd) Run(g *Globals) error {
	m, err := c.build()
	if err != nil {
		return err
	}
	out := c.Output
	if out == "" {
		out = filepath.Join(filepath.Dir(c.Input), batch.OutputName(c.Input, m.Name()))
	}
	res, err := batch.File(g.Ctx, c.Input, out, m, c.runOptions()...)
	if err != nil {
		return err
	}
	report.Result(os.Stdout, res.Input, res.Output, res.Result)
	return nil
}

// BatchCmd denoises a directory.
type BatchCmd struct {
	InputDir    string `arg:"" type:"existingdir" help:"Directory with input WAV files."`
	OutputDir   string `arg:"" help:"Directory for denoised files."`
	Pattern     string `short:"p" default:"*.wav" help:"File pattern to match."`
	TUI         bool   `name:"tui" help:"Show an interactive progress view."`
	MethodFlags `embed:""`
}

func (c *BatchCmd) Run(g *Globals) error {
	m, err := c.build()
	if err != nil {
		return err
	}
	cfg := batch.Config{InputDir: c.InputDir, OutputDir: c.OutputDir, Method: m, Pattern: c.Pattern}
	opts := []batch.Option{batch.WithRunOptions(c.runOptions()...)}

	var sum *batch.Summary
	if c.TUI {
		sum, err = c.runTUI(g.Ctx, cfg, opts)
	} else {
		opts = append(opts, batch.WithProgress(func(e batch.Event) {
			if e.Kind == batch.FileStarted {
				fmt.Printf("[%d/%d] %s\n", e.Index+1, e.Total, filepath.Base(e.Input))
			}
		}))
		sum, err = batch.Process(g.Ctx, cfg, opts...)
	}
	if sum == nil {
		return err
	}
	report.Summary(os.Stdout, sum)
	if err != nil && len(sum.Results) == 0 && sum.Total > 0 {
		return err
	}
	return nil
}

func (c *BatchCmd) runTUI(ctx context.Context, cfg batch.Config, opts []batch.Option) (*batch.Summary, error) {
	files, err := batch.Files(cfg.InputDir, cfg.Pattern)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(cfg.Method.Name(), files, cancel)
	type outcome struct {
		sum *batch.Summary
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		sum, err := batch.Process(ctx, cfg, append(opts, batch.WithProgress(model.Progress()))...)
		done <- outcome{sum, err}
		model.Finish(sum, err)
	}()

	if _, err := tea.NewProgram(model).Run(); err != nil {
		cancel()
		return nil, fmt.Errorf("ui: %w", err)
	}
	// Drain events the program no longer reads; Finish closes the channel.
	go func() {
		for range model.Events {
		}
	}()
	res := <-done
	return res.sum, res.err
}

// PreviewCmd scores a method on the head of a file.
type PreviewCmd struct {
	Input       string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output      string `short:"o" help:"Write the denoised excerpt here."`
	MethodFlags `embed:""`
}

func (c *PreviewCmd) Run(g *Globals) error {
	m, err := c.build()
	if err != nil {
		return err
	}
	sig, err := audioio.Load(c.Input)
	if err != nil {
		return err
	}
	res, err := denoise.Preview(g.Ctx, sig, m, c.runOptions()...)
	if err != nil {
		return err
	}
	if c.Output != "" {
		if err := audioio.Save(c.Output, res.Output); err != nil {
			return err
		}
	}
	report.Result(os.Stdout, c.Input, c.Output, res)
	return nil
}

// MethodsCmd lists the accepted names.
type MethodsCmd struct{}

func (MethodsCmd) Run() error {
	fmt.Println(report.TitleStyle.Render("Methods"))
	fmt.Println("  " + strings.Join(denoise.MethodNames(), ", "))
	fmt.Println(report.TitleStyle.Render("FIR windows"))
	fmt.Println("  " + strings.Join(window.Names(), ", "))
	return nil
}
