package simulator

const (
	DefaultScale = 2
	DefaultTPS   = 50
)

type Options struct {
	Title string
	// Scale is how many window pixels show one panel pixel.
	Scale int
	// TPS is the number of steps per second.
	TPS int
}

func (o *Options) withDefaults() *Options {
	out := Options{Title: "touchtris", Scale: DefaultScale, TPS: DefaultTPS}
	if o == nil {
		return &out
	}
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Scale > 0 {
		out.Scale = o.Scale
	}
	if o.TPS > 0 {
		out.TPS = o.TPS
	}
	return &out
}
