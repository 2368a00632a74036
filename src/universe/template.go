package universe

import "sort"

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string      //template name
	Descr       string      //template descr
	Coordinates [][2]uint32 //array of [x,y] coordinates
}

var templates = map[string]Template{
	"block": {
		"block",
		"2x2 still life",
		[][2]uint32{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
	},
	"blinker": {
		"blinker",
		"period 2 oscillator",
		[][2]uint32{{2, 1}, {2, 2}, {2, 3}},
	},
	"glider": {
		"glider",
		"the smallest spaceship, moves one cell diagonally every 4 generations",
		[][2]uint32{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
	"sample": {
		"sample",
		"the test sample with 3 stable patterns",
		[][2]uint32{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}},
	},
}

//LookupTemplate returns the builtin template by name
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

//Templates returns the names of builtin templates sorted
func Templates() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
