package view

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"lifegame/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
//every simulation call is made on the gocui main loop goroutine
type ConsoleUI struct {
	s          *universe.Simulation
	g          *gocui.Gui
	k          []keyBindings
	rnd        *rand.Rand
	message    string
	quit       chan struct{}
	stopTicker chan struct{}
	liveFiller string
	deadFiller string
}

const title = "This is \"The Life\" game simulation"

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal UI, seed feeds the random settling
func NewViewTerminal(seed uint64) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		rnd:        rand.New(rand.NewPCG(seed, 0)),
		quit:       make(chan struct{}),
		liveFiller: aurora.Green(string(universe.AliveGlyph)).String(),
		deadFiller: string(universe.DeadGlyph),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "field"},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("keybinding %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(s *universe.Simulation) {
	t.s = s
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	defer close(t.quit)
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return fmt.Errorf("terminal main loop: %w", err)
	}
	return nil
}

//Notify shows the message in the header
func (t *ConsoleUI) Notify(message string) {
	t.g.Update(func(g *gocui.Gui) error {
		t.message = message
		return nil
	})
}

func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField() {
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("field")
		if e != nil {
			return nil
		}
		v.Clear()
		_, _ = fmt.Fprint(v, t.fieldText(v.Size()))
		return nil
	})
}

//fieldText draws the universe cropped to maxW x maxH
func (t *ConsoleUI) fieldText(maxW int, maxH int) string {
	u := t.s.Universe()
	w, h := int(u.Width()), int(u.Height())
	crop := w > maxW || h > maxH

	var b bytes.Buffer
	for y := 0; y < h && y < maxH; y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		if crop && y == maxH-1 {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for x := 0; x < w && x < maxW; x++ {
			if u.Cell(uint32(x), uint32(y)) == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus() {
	s := t.s.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Tick time", "%v", s.TickTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.s.Options()
		u := t.s.Universe()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", u.Width(), u.Height()))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Generations", "%v max", c.MaxSteps))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	header := title
	if t.message != "" {
		header = t.message
	}

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if _, err := t.headerLayout(g, 3, header); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Universe"
		v.Frame = true
	}
	t.renderField()

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, t.helpText())
	}

	return nil
}

func (t *ConsoleUI) helpText() string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	t.s.Stop()
	t.stopTicking()
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	if !t.s.Running() {
		t.s.Step()
	}
	return nil
}

//cmdRun starts the ticker, every tick is applied inside the main loop
func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	stop := t.startTicking()
	if stop == nil {
		return nil
	}
	interval := t.s.Options().Interval
	if interval <= 0 {
		interval = universe.DefInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.quit:
				return
			case <-ticker.C:
				t.g.Update(func(*gocui.Gui) error {
					t.tick(stop)
					return nil
				})
			}
		}
	}()
	return nil
}

//startTicking switches the simulation to running and replaces the ticker channel
//returns nil when a ticker is already active or the simulation cannot run
func (t *ConsoleUI) startTicking() chan struct{} {
	if t.s.Running() && t.stopTicker != nil {
		return nil
	}
	t.stopTicking()
	t.s.Start()
	if !t.s.Running() {
		return nil
	}
	t.stopTicker = make(chan struct{})
	return t.stopTicker
}

//stopTicking closes the active ticker channel
func (t *ConsoleUI) stopTicking() {
	if t.stopTicker != nil {
		close(t.stopTicker)
		t.stopTicker = nil
	}
}

//tick steps the simulation when stop is the active ticker
//ticks queued by a replaced ticker are dropped
func (t *ConsoleUI) tick(stop chan struct{}) bool {
	if stop == nil || stop != t.stopTicker {
		return false
	}
	if !t.s.Running() {
		t.stopTicking()
		return false
	}
	t.s.Step()
	return true
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.s.Stop()
	t.stopTicking()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.s.Stop()
	t.stopTicking()
	t.s.Reset(func(u *universe.Universe) { u.Clear() })
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	if t.s.Running() {
		return nil
	}
	t.s.Reset(func(u *universe.Universe) { u.Randomize(t.rnd) })
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	if cx < 0 || cy < 0 {
		return nil
	}
	t.s.InverseCell(uint32(cx), uint32(cy))
	return nil
}
