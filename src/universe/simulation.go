package universe

import (
	"context"
	"fmt"
	"time"
)

//Options represents the Simulation's configurable options
type Options struct {
	Interval time.Duration
	//0 means unlimited
	MaxSteps int
	//finish when all cells are dead or nothing changed
	StopWhenStable bool
	//extra details shown by viewers
	Advanced map[string]interface{}
}

//Status represents the status of the Simulation at concrete moment
type Status struct {
	Generation  int
	RunningMode RunningState
	LiveCells   int
	TickTime    time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control it
type Viewer interface {
	Register(s *Simulation)
	Refresh()
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefInterval = time.Millisecond * 100
	DefMaxSteps = 1000
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (rs RunningState) String() string {
	switch rs {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(rs))
}

var DefaultOptions = Options{
	Interval:       DefInterval,
	MaxSteps:       DefMaxSteps,
	StopWhenStable: true,
}

//Simulation drives a Universe: ticks it, keeps the counters and notifies the viewers
//all methods must be called from one goroutine
type Simulation struct {
	u       *Universe
	options Options
	state   Status
	views   []Viewer
}

//NewSimulation creates the Simulation for the universe, nil options means DefaultOptions
func NewSimulation(u *Universe, o *Options) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	s := Simulation{u: u, options: *o}
	s.options.Advanced = make(map[string]interface{}, len(o.Advanced)+1)
	for k, v := range o.Advanced {
		s.options.Advanced[k] = v
	}
	s.options.Advanced["Dimension"] = fmt.Sprintf("%v x %v", u.Width(), u.Height())
	s.state.LiveCells = u.LiveCells()
	return &s
}

//Universe returns the driven universe
func (s *Simulation) Universe() *Universe {
	return s.u
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	return s.state
}

//Options returns the simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	return s.options
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//Step does one generation
//the simulation is finished when MaxSteps is reached, or the universe is dead or stable and StopWhenStable is set
func (s *Simulation) Step() {
	if s.state.RunningMode == RunningStateFinished {
		return
	}
	rm := s.state.RunningMode
	s.state.RunningMode = RunningStateStep

	start := time.Now()
	live, changed := s.u.Advance()
	s.state.TickTime = time.Since(start)
	s.state.Generation++
	s.state.LiveCells = live

	finished := s.options.MaxSteps != 0 && s.state.Generation >= s.options.MaxSteps
	if s.options.StopWhenStable && (live == 0 || !changed) {
		finished = true
	}
	if finished {
		s.state.RunningMode = RunningStateFinished
	} else {
		s.state.RunningMode = rm
	}
	s.refreshView()
}

//Run steps the simulation every Interval until it is finished, stopped or ctx is done
//blocks the caller
func (s *Simulation) Run(ctx context.Context) error {
	if s.state.RunningMode == RunningStateFinished {
		return nil
	}
	s.Start()
	for {
		if err := ctx.Err(); err != nil {
			s.Stop()
			return fmt.Errorf("simulation stopped at generation %v: %w", s.state.Generation, err)
		}
		s.Step()
		if s.state.RunningMode != RunningStateRun {
			return nil
		}
		if s.options.Interval <= 0 {
			continue
		}
		t := time.NewTimer(s.options.Interval)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}
}

//Start switches the simulation to the running mode without stepping it
//the caller drives it by calling Step until the mode changes
func (s *Simulation) Start() {
	if s.state.RunningMode == RunningStateFinished || s.state.RunningMode == RunningStateRun {
		return
	}
	s.state.RunningMode = RunningStateRun
	s.refreshView()
}

//Running reports whether the simulation is in the running mode
func (s *Simulation) Running() bool {
	return s.state.RunningMode == RunningStateRun
}

//Stop switches a running simulation back to the manual mode
//Run returns after the current step
func (s *Simulation) Stop() {
	if s.state.RunningMode == RunningStateRun {
		s.state.RunningMode = RunningStateManual
		s.refreshView()
	}
}

//Reset resets the counters and lets fn reseed the universe
func (s *Simulation) Reset(fn func(u *Universe)) {
	if fn != nil {
		fn(s.u)
	}
	s.state = Status{LiveCells: s.u.LiveCells()}
	s.refreshView()
}

//InverseCell inverses the cell state at point x, y
func (s *Simulation) InverseCell(x uint32, y uint32) {
	s.u.Toggle(x, y)
	s.state.LiveCells = s.u.LiveCells()
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh()
	}
}
