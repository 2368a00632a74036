package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"lifegame/src/notify"
	"lifegame/src/universe"
	"lifegame/src/view"
)

const seedTemplate = "seed"

type EnvOptions struct {
	width    uint32
	height   uint32
	view     string
	template string
	random   bool
	seed     uint64
	noGreet  bool
	noColor  bool
	noClear  bool
	scale    int
}

//starter is a viewer owning the main loop of its view
type starter interface {
	universe.Viewer
	notify.Notifier
	Start() error
}

var views = map[string]func(eo *EnvOptions) (starter, error){
	"interactive": func(eo *EnvOptions) (starter, error) {
		t, err := view.NewViewTerminal(eo.seed)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
	"window": func(eo *EnvOptions) (starter, error) {
		return view.NewWindow(eo.scale), nil
	},
}

func main() {
	eo, uo := initOptions()

	u := newUniverse(eo)
	uo.Advanced = map[string]interface{}{"View": eo.view, "Template": eo.template}
	s := universe.NewSimulation(u, uo)

	if eo.view == "console" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := runConsole(ctx, os.Stdout, eo, s)
		stop()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	v, err := views[eo.view](eo)
	if err != nil {
		log.Fatal(err)
	}
	s.RegisterViewer(v)
	if !eo.noGreet {
		notify.Greet(v)
	}
	if err := v.Start(); err != nil {
		log.Fatal(err)
	}
}

//runConsole prints every generation to w until it is finished or ctx is cancelled
func runConsole(ctx context.Context, w io.Writer, eo *EnvOptions, s *universe.Simulation) error {
	if !eo.noGreet {
		notify.Greet(notify.NewWriterNotifier(w, !eo.noColor))
	}
	c := view.NewConsoleOut(w, !eo.noColor, !eo.noClear)
	s.RegisterViewer(c)

	c.Start()
	if err := s.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Print(err)
			return nil
		}
		return err
	}
	return nil
}

func newUniverse(eo *EnvOptions) *universe.Universe {
	if eo.template == seedTemplate && !eo.random {
		return universe.NewSized(eo.width, eo.height)
	}
	u := universe.Empty(eo.width, eo.height)
	if eo.random {
		u.Randomize(rand.New(rand.NewPCG(eo.seed, 0)))
		return u
	}
	tmpl, _ := universe.LookupTemplate(eo.template)
	u.SettleTemplate(tmpl)
	return u
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultOptions
	uo = &o
	eo = &EnvOptions{
		width:    universe.DefWidth,
		height:   universe.DefHeight,
		view:     "console",
		template: seedTemplate,
		seed:     uint64(time.Now().UnixNano()),
		scale:    8,
	}

	viewNames := []string{"console"}
	for k := range views {
		viewNames = append(viewNames, k)
	}
	sort.Strings(viewNames)
	templateNames := append([]string{seedTemplate}, universe.Templates()...)

	flaggy.SetName("lifegame")
	flaggy.SetDescription("Conway's \"The Life\" game on a clamped edge grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.UInt32(&eo.width, "x", "width", "Width of a simulation field")
	flaggy.UInt32(&eo.height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Bool(&uo.StopWhenStable, "", "stopWhenStable", "Finish when the universe is dead or does not change")
	flaggy.String(&eo.view, "v", "view", "View to use ["+strings.Join(viewNames, "|")+"]")
	flaggy.String(&eo.template, "t", "template", "Seeding template ["+strings.Join(templateNames, "|")+"]")
	flaggy.Bool(&eo.random, "r", "random", "Settle with random data")
	flaggy.UInt64(&eo.seed, "", "seed", "Seed of the random data")
	flaggy.Int(&eo.scale, "", "scale", "Window pixels per cell")
	flaggy.Bool(&eo.noGreet, "", "no-greet", "Do not show the greeting")
	flaggy.Bool(&eo.noColor, "", "no-color", "Disable colors in the console view")
	flaggy.Bool(&eo.noClear, "", "no-clear", "Append frames instead of redrawing the console")

	flaggy.Parse()

	if eo.width == 0 || eo.height == 0 {
		flaggy.ShowHelpAndExit(fmt.Sprintf("invalid dimension %v x %v", eo.width, eo.height))
	}
	if _, ok := views[eo.view]; !ok && eo.view != "console" {
		flaggy.ShowHelpAndExit("unknown view")
	}
	if _, ok := universe.LookupTemplate(eo.template); !ok && eo.template != seedTemplate {
		flaggy.ShowHelpAndExit("unknown template")
	}
	return
}
