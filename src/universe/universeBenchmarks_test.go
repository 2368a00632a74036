package universe

import (
	"math/rand/v2"
	"testing"
)

const (
	width  = 200
	height = 200
)

func Benchmark_Tick(b *testing.B) {
	u := NewSized(width, height)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Tick()
	}
}

func Benchmark_Render(b *testing.B) {
	u := NewSized(width, height)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.Render()
	}
}

func Benchmark_Simulation(b *testing.B) {
	o := DefaultOptions
	o.Interval = 0
	o.MaxSteps = 100
	o.StopWhenStable = false
	u := Empty(width, height)
	s := NewSimulation(u, &o)
	r := rand.New(rand.NewPCG(1, 0))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s.Reset(func(u *Universe) { u.Randomize(r) })
		b.StartTimer()
		for s.Status().RunningMode != RunningStateFinished {
			s.Step()
		}
	}
}
