package style

// FillKind discriminates the fill variant.
type FillKind string

const (
	// FillSolid is a plain color fill.
	FillSolid FillKind = "solid"
	// FillGradient is a multi-stop gradient fill.
	FillGradient FillKind = "gradient"
	// FillImage fills with a referenced image.
	FillImage FillKind = "image"
)

// GradientKind selects the gradient geometry.
type GradientKind string

const (
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
)

// GradientStop is one color stop. Offset is in [0, 1].
type GradientStop struct {
	Offset  float64 `json:"offset" toml:"offset"`
	Color   string  `json:"color" toml:"color"`
	Opacity float64 `json:"opacity" toml:"opacity"`
}

// Gradient describes a linear or radial gradient by its ordered stops.
// Angle (degrees) applies to linear gradients only.
type Gradient struct {
	Kind  GradientKind   `json:"kind" toml:"kind"`
	Stops []GradientStop `json:"stops" toml:"stops"`
	Angle float64        `json:"angle,omitempty" toml:"angle"`
}

// Fill is a tagged variant: exactly one of Color, Gradient, or ImageURL is
// meaningful, selected by Kind. Consumers must branch on Kind; there is no
// common representation to fall back to.
type Fill struct {
	Kind     FillKind  `json:"kind"`
	Color    string    `json:"color,omitempty" toml:"color"`
	Gradient *Gradient `json:"gradient,omitempty" toml:"gradient"`
	ImageURL string    `json:"imageUrl,omitempty" toml:"image_url"`
}

// Solid returns a solid color fill.
func Solid(color string) Fill {
	return Fill{Kind: FillSolid, Color: color}
}

// LinearGradient returns a linear gradient fill from the given stops.
func LinearGradient(angle float64, stops ...GradientStop) Fill {
	return Fill{Kind: FillGradient, Gradient: &Gradient{Kind: GradientLinear, Angle: angle, Stops: stops}}
}

// RadialGradient returns a radial gradient fill from the given stops.
func RadialGradient(stops ...GradientStop) Fill {
	return Fill{Kind: FillGradient, Gradient: &Gradient{Kind: GradientRadial, Stops: stops}}
}

// Image returns an image fill.
func Image(url string) Fill {
	return Fill{Kind: FillImage, ImageURL: url}
}

// IsZero reports whether the fill is unset (no kind selected).
func (f Fill) IsZero() bool { return f.Kind == "" }
