package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
	"lifegame/src/universe"
)

//ansi sequence moving the cursor home and clearing the screen
const clearScreen = "\033[H\033[2J"

//ConsoleOut prints every generation of the simulation to the writer
type ConsoleOut struct {
	s           *universe.Simulation
	w           io.Writer
	au          aurora.Aurora
	clearScreen bool
	startTime   time.Time
}

//NewConsoleOut creates the viewer, clear makes it redraw the terminal in place
func NewConsoleOut(w io.Writer, colors bool, clear bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), clearScreen: clear}
}

func (c *ConsoleOut) Refresh() {
	st := c.s.Status()
	switch st.RunningMode {
	case universe.RunningStateRun, universe.RunningStateManual:
		c.printFrame(st)
	case universe.RunningStateFinished:
		c.printFrame(st)
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	}
}

func (c *ConsoleOut) Register(s *universe.Simulation) {
	c.s = s
	o := c.s.Options()
	fmt.Fprintln(c.w, "Running configuration:")
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max generations: %v\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

//Start marks the simulation start time
func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printFrame(st universe.Status) {
	if c.clearScreen {
		fmt.Fprint(c.w, clearScreen)
	}
	fmt.Fprint(c.w, c.s.Universe().Render())
	fmt.Fprintf(c.w, "%v: %v  %v: %v  %v: %v\n",
		c.au.Green("Generation"), st.Generation,
		c.au.Green("Live cells"), st.LiveCells,
		c.au.Green("Tick"), st.TickTime.Round(time.Microsecond))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
