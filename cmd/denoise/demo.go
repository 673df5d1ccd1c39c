package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-denoise/audioio"
	"github.com/cwbudde/algo-denoise/denoise"
	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/filter/bank"
	"github.com/cwbudde/algo-denoise/dsp/signal"
	"github.com/cwbudde/algo-denoise/dsp/spectral"
	"github.com/cwbudde/algo-denoise/internal/report"
	"github.com/cwbudde/algo-denoise/measure/snr"
)

// DemoCmd runs every method on a synthetic signal with a known clean
// reference.
type DemoCmd struct {
	Seed       int64   `default:"1" help:"Noise seed."`
	SampleRate float64 `default:"500" help:"Sample rate in Hz."`
	Samples    int     `default:"2048" help:"Signal length."`
	Freq       float64 `default:"5" help:"Sine frequency in Hz."`
	Noise      float64 `default:"0.7" help:"Noise standard deviation."`
	Cutoff     float64 `default:"10" help:"Lowpass cutoff of the filter methods in Hz."`
	OutDir     string  `help:"Write the clean, noisy and denoised signals here as WAV."`
}

type demoEntry struct {
	label  string
	file   string
	method denoise.Method
}

func (c *DemoCmd) entries(s signal.Noisy) []demoEntry {
	lowFIR := bank.Lowpass(c.Cutoff, c.SampleRate).WithTaps(51)
	return []demoEntry{
		{"fir (causal)", "fir", denoise.FIR{Spec: lowFIR, ChunkSize: core.DefaultChunkSize}},
		{"fir (centered)", "fir_centered", denoise.FIR{Spec: lowFIR, ChunkSize: core.DefaultChunkSize, Centered: true}},
		{"freq", "freq", denoise.Freq{Band: spectral.Below(c.Cutoff), ChunkSize: core.DefaultChunkSize}},
		{"iir (continuous)", "iir", denoise.IIR{
			Spec:       bank.Lowpass(c.Cutoff, c.SampleRate).WithOrder(bank.DefaultOrder),
			ChunkSize:  core.DefaultChunkSize,
			Continuous: true,
		}},
		{"lms", "lms", denoise.DefaultLMS(s.Noise)},
		{"spectral", "spectral", denoise.DefaultSpectral()},
		{"wavelet", "wavelet", denoise.DefaultWavelet()},
	}
}

func (c *DemoCmd) Run(g *Globals) error {
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(c.SampleRate)},
		signal.WithSeed(c.Seed),
	)
	s, err := gen.NoisySine(c.Freq, c.Noise, c.Samples)
	if err != nil {
		return err
	}
	fs := int(c.SampleRate)
	noisy := core.NewSignal(s.Noisy, fs)

	baseline, err := snr.SNR(s.Clean, s.Noisy)
	if err != nil {
		return err
	}
	fmt.Printf("%d Hz sine at %d Hz, noise std %.2f, seed %d: noisy SNR %s\n",
		int(c.Freq), fs, c.Noise, c.Seed, report.DB(baseline))

	entries := c.entries(s)
	rows := make([]report.Comparison, 0, len(entries))
	for _, e := range entries {
		res, err := denoise.Run(g.Ctx, noisy, e.method, denoise.WithReference(s.Clean))
		rows = append(rows, report.Comparison{Label: e.label, Result: res, Err: err})
		if err != nil || c.OutDir == "" {
			continue
		}
		if err := audioio.Save(filepath.Join(c.OutDir, "demo_"+e.file+".wav"), res.Output); err != nil {
			return err
		}
	}
	report.Table(os.Stdout, "SNR AGAINST CLEAN SIGNAL", rows)

	if c.OutDir != "" {
		if err := audioio.Save(filepath.Join(c.OutDir, "demo_clean.wav"), core.NewSignal(s.Clean, fs)); err != nil {
			return err
		}
		if err := audioio.Save(filepath.Join(c.OutDir, "demo_noisy.wav"), noisy); err != nil {
			return err
		}
	}
	return nil
}
