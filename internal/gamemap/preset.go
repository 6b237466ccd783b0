package gamemap

// Preset is one selectable world size.
type Preset struct {
	Name          string
	Width, Height int
	Zoom          float64 // default camera zoom
}

// Presets lists the world sizes in menu order.
var Presets = [...]Preset{
	{"TINY", 8, 8, 4.0},
	{"SMALL", 16, 16, 2.0},
	{"MEDIUM", 32, 32, 1.5},
	{"LARGE", 64, 64, 0.8},
	{"HUGE", 128, 128, 0.4},
	{"GIGANTIC", 256, 256, 0.2},
}

// PresetFor returns the preset whose dimensions match, if any.
func PresetFor(width, height int) (Preset, bool) {
	for _, p := range Presets {
		if p.Width == width && p.Height == height {
			return p, true
		}
	}
	return Preset{}, false
}
