//go:build ebiten

package view

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"lifegame/src/universe"
)

//Window shows the simulation in a desktop window, one scaled pixel per cell
type Window struct {
	s       *universe.Simulation
	img     *ebiten.Image
	buf     []byte
	scale   int
	paused  bool
	message string

	onColor  color.Color
	offColor color.Color
}

//NewWindow creates the window viewer
func NewWindow(scale int) *Window {
	if scale <= 0 {
		scale = 8
	}
	return &Window{scale: scale, onColor: color.White, offColor: color.Black}
}

func (w *Window) Register(s *universe.Simulation) {
	w.s = s
	u := s.Universe()
	w.img = ebiten.NewImage(int(u.Width()), int(u.Height()))
	w.buf = make([]byte, 4*u.Len())
}

func (w *Window) Refresh() {}

//Notify shows the message in the window title
func (w *Window) Notify(message string) {
	w.message = message
	ebiten.SetWindowTitle("lifegame - " + message)
}

//Start opens the window and blocks until it is closed
func (w *Window) Start() error {
	u := w.s.Universe()
	if w.message == "" {
		ebiten.SetWindowTitle("lifegame")
	}
	ebiten.SetWindowSize(int(u.Width())*w.scale, int(u.Height())*w.scale)
	if iv := w.s.Options().Interval; iv > 0 {
		tps := int(1e9 / iv.Nanoseconds())
		if tps < 1 {
			tps = 1
		}
		ebiten.SetTPS(tps)
	}
	w.s.Start()
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

//Update handles the keys and advances the simulation
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused = !w.paused
		if w.paused {
			w.s.Stop()
		} else {
			w.s.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !w.s.Running() {
		w.s.Step()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x >= 0 && y >= 0 {
			w.s.InverseCell(uint32(x/w.scale), uint32(y/w.scale))
		}
	}
	if w.s.Running() {
		w.s.Step()
	}
	return nil
}

//Draw renders the current generation
func (w *Window) Draw(screen *ebiten.Image) {
	fillCellsRGBA(w.buf, w.s.Universe().Cells(), w.onColor, w.offColor)
	w.img.WritePixels(w.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

//Layout returns the logical screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	u := w.s.Universe()
	return int(u.Width()) * w.scale, int(u.Height()) * w.scale
}
