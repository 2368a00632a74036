//go:build !ebiten

package view

import (
	"errors"

	"lifegame/src/universe"
)

//ErrNoWindow is returned when the binary is built without the ebiten tag
var ErrNoWindow = errors.New("the window view requires building with the 'ebiten' tag")

//Window is a placeholder for the headless build
type Window struct{}

func NewWindow(int) *Window { return &Window{} }

func (w *Window) Register(*universe.Simulation) {}

func (w *Window) Refresh() {}

func (w *Window) Notify(string) {}

//Start always reports that the build tag is missing
func (w *Window) Start() error { return ErrNoWindow }
