package report

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-denoise/batch"
	"github.com/cwbudde/algo-denoise/denoise"
	"github.com/stretchr/testify/assert"
)

func TestDB(t *testing.T) {
	assert.Equal(t, "3.14 dB", DB(3.14159))
	assert.Equal(t, "+inf dB", DB(math.Inf(1)))
	assert.Equal(t, "-inf dB", DB(math.Inf(-1)))
	assert.Equal(t, "n/a", DB(math.NaN()))
}

func TestGainSign(t *testing.T) {
	assert.Contains(t, Gain(2.5), "+2.50 dB")
	assert.Contains(t, Gain(-1), "-1.00 dB")
	assert.Contains(t, Gain(0), "+0.00 dB")
	assert.Contains(t, Gain(math.Inf(1)), "+inf dB")
}

func sample(method string, gain float64) *denoise.Result {
	return &denoise.Result{
		Method:       method,
		SampleRate:   16000,
		Duration:     1.25,
		ReferenceSNR: 0,
		DenoisedSNR:  gain,
		Improvement:  gain,
		Elapsed:      3 * time.Millisecond,
	}
}

func TestResult(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, "in.wav", "out.wav", sample("spectral", 4.2))

	out := buf.String()
	assert.Contains(t, out, "PROCESSING COMPLETE")
	assert.Contains(t, out, "in.wav")
	assert.Contains(t, out, "out.wav")
	assert.Contains(t, out, "SPECTRAL")
	assert.Contains(t, out, "16000 Hz")
	assert.Contains(t, out, "1.25 seconds")
	assert.Contains(t, out, "+4.20 dB")
}

func TestSummary(t *testing.T) {
	results := []batch.FileResult{
		{Input: "/a/one.wav", Result: sample("fir", 1)},
		{Input: "/a/two.wav", Result: sample("fir", 3)},
	}
	s := &batch.Summary{
		Total:              3,
		Results:            results,
		Failures:           []batch.Failure{{Input: "/a/bad.wav", Err: errors.New("boom")}},
		AverageImprovement: 2,
		Best:               &results[1],
		Worst:              &results[0],
	}

	var buf bytes.Buffer
	Summary(&buf, s)
	out := buf.String()
	assert.Contains(t, out, "BATCH PROCESSING SUMMARY")
	assert.Contains(t, out, "+2.00 dB")
	assert.Contains(t, out, "+3.00 dB (two.wav)")
	assert.Contains(t, out, "+1.00 dB (one.wav)")
	assert.Contains(t, out, "bad.wav: boom")
}

func TestSummaryNoResults(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, &batch.Summary{})
	assert.NotContains(t, buf.String(), "Best")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, "DEMO", []Comparison{
		{Label: "freq", Result: sample("freq", 10.8)},
		{Label: "fir (causal)", Err: errors.New("bad cutoff")},
	})
	out := buf.String()
	assert.Contains(t, out, "DEMO")
	assert.Contains(t, out, "10.80 dB")
	assert.Contains(t, out, "bad cutoff")
}
