// Package perf records the time taken by each game cycle and renders
// it as a plot.
package perf

import (
	"fmt"
	"image"
	"io"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Sample is the measurement of one cycle.
type Sample struct {
	Duration time.Duration
	Executed int
}

// Recorder keeps the samples of the last Size cycles.
type Recorder struct {
	samples []Sample
	next    int
	total   int
	size    int
}

// NewRecorder returns a recorder keeping size samples.
func NewRecorder(size int) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{samples: make([]Sample, 0, size), size: size}
}

// Record adds the sample of one cycle, dropping the oldest once full.
func (r *Recorder) Record(d time.Duration, executed int) {
	s := Sample{Duration: d, Executed: executed}
	r.total++
	if len(r.samples) < r.size {
		r.samples = append(r.samples, s)
		return
	}
	r.samples[r.next] = s
	r.next = (r.next + 1) % r.size
}

// Samples returns the kept samples, oldest first.
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, 0, len(r.samples))
	out = append(out, r.samples[r.next:]...)
	return append(out, r.samples[:r.next]...)
}

// Total returns the number of cycles recorded, including dropped ones.
func (r *Recorder) Total() int { return r.total }

// Stats summarises the kept samples.
type Stats struct {
	Cycles   int
	Mean     time.Duration
	P95      time.Duration
	Max      time.Duration
	Executed int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d cycles, mean %v, p95 %v, max %v, %d opcodes", s.Cycles, s.Mean, s.P95, s.Max, s.Executed)
}

// Stats computes the summary of the kept samples.
func (r *Recorder) Stats() Stats {
	var st Stats
	if len(r.samples) == 0 {
		return st
	}
	d := make([]time.Duration, len(r.samples))
	var sum time.Duration
	for i, s := range r.samples {
		d[i] = s.Duration
		sum += s.Duration
		st.Executed += s.Executed
	}
	sort.Slice(d, func(i, j int) bool { return d[i] < d[j] })

	st.Cycles = len(d)
	st.Mean = sum / time.Duration(len(d))
	st.P95 = d[(len(d)*95-1)/100]
	st.Max = d[len(d)-1]
	return st
}

// Plot draws the cycle times in microseconds as a PNG of the given
// size to w.
func (r *Recorder) Plot(w io.Writer, width, height int) error {
	p := plot.New()
	p.Title.Text = "Cycle Time"
	p.X.Label.Text = "cycle"
	p.Y.Label.Text = "µs"

	samples := r.Samples()
	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i].X = float64(r.total - len(samples) + i)
		xys[i].Y = float64(s.Duration) / float64(time.Microsecond)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("cycle time plot: %w", err)
	}
	p.Add(line, plotter.NewGrid())
	p.Legend.Add(r.Stats().String(), line)
	p.Legend.Top = true

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("cycle time plot: %w", err)
	}
	return nil
}
