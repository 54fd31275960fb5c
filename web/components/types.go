package components

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

// FormDefaults seeds the options form with the values the API uses when a
// parameter is omitted.
type FormDefaults struct {
	Text           string
	ECL            string
	MinVersion     int
	MaxVersion     int
	Mask           string
	BoostECL       bool
	ModuleSize     int
	Border         int
	Dark           string
	Light          string
	LogoSize       int
	LogoShape      string
	LogoBackground string
	Encoder        string
	Encoders       []string
	// MaxLogoBytes is shown next to the upload control.
	MaxLogoBytes int64
}

var ECLOptions = []Option{
	{"L", "Low (7%)"},
	{"M", "Medium (15%)"},
	{"Q", "Quartile (25%)"},
	{"H", "High (30%)"},
}

var ShapeOptions = []Option{
	{"square", "Square"},
	{"circle", "Circle"},
	{"rounded", "Rounded rectangle"},
}

var BackgroundOptions = []Option{
	{"solid", "Solid"},
	{"halo", "Gradient halo"},
	{"radial", "Radial gradient"},
}

func MaskOptions() []Option {
	opts := []Option{{"auto", "Auto"}}
	for _, m := range []string{"0", "1", "2", "3", "4", "5", "6", "7"} {
		opts = append(opts, Option{m, "Pattern " + m})
	}
	return opts
}
