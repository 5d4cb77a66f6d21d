package style

import (
	"github.com/pieforge/pieforge/pkg/errors"
	"github.com/pieforge/pieforge/pkg/scene"
)

// Typography is the default text styling of a theme.
type Typography struct {
	FontFamily string  `json:"fontFamily" toml:"font_family"`
	FontSize   float64 `json:"fontSize" toml:"font_size"`
	FontWeight int     `json:"fontWeight" toml:"font_weight"`
	Color      string  `json:"color" toml:"color"`
}

// Shadow is an optional drop shadow.
type Shadow struct {
	OffsetX float64 `json:"offsetX" toml:"offset_x"`
	OffsetY float64 `json:"offsetY" toml:"offset_y"`
	Blur    float64 `json:"blur" toml:"blur"`
	Color   string  `json:"color" toml:"color"`
}

// Override is a partial style keyed by node id in the theme. Present
// fields win unconditionally over the node's kind-based defaults.
type Override struct {
	Fill        *Fill    `json:"fill,omitempty" toml:"fill"`
	FillOpacity *float64 `json:"fillOpacity,omitempty" toml:"fill_opacity"`
	Stroke      *string  `json:"stroke,omitempty" toml:"stroke"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty" toml:"stroke_width"`
	StrokeDash  *string  `json:"strokeDash,omitempty" toml:"stroke_dash"`
	Opacity     *float64 `json:"opacity,omitempty" toml:"opacity"`
	FontFamily  *string  `json:"fontFamily,omitempty" toml:"font_family"`
	FontSize    *float64 `json:"fontSize,omitempty" toml:"font_size"`
	FontWeight  *int     `json:"fontWeight,omitempty" toml:"font_weight"`
	TextColor   *string  `json:"textColor,omitempty" toml:"text_color"`
	Shadow      *Shadow  `json:"shadow,omitempty" toml:"shadow"`
	Icon        *string  `json:"icon,omitempty" toml:"icon"`
}

// Theme is the visual configuration of a board: palette, background,
// default typography, and the two node-keyed override mappings. Themes are
// owned by the caller; the pipeline only reads them.
type Theme struct {
	Name       string     `json:"name,omitempty" toml:"name"`
	Palette    []string   `json:"palette" toml:"palette"`
	Background string     `json:"background" toml:"background"`
	Typography Typography `json:"typography" toml:"typography"`

	StyleOverrides     map[string]Override                `json:"styleOverrides,omitempty" toml:"style_overrides"`
	TransformOverrides map[string]scene.TransformOverride `json:"transformOverrides,omitempty" toml:"transform_overrides"`
}

// DefaultTheme returns the theme applied to a fresh board.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Palette: []string{
			"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
			"#EDC948", "#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
		},
		Background: "#FFFFFF",
		Typography: Typography{
			FontFamily: "Inter, sans-serif",
			FontSize:   12,
			FontWeight: 400,
			Color:      "#333333",
		},
	}
}

// ApplyDefaults fills any unset theme fields from the default theme, so a
// partially specified theme file still resolves completely.
func (t Theme) ApplyDefaults() Theme {
	def := DefaultTheme()
	if len(t.Palette) == 0 {
		t.Palette = def.Palette
	}
	if t.Background == "" {
		t.Background = def.Background
	}
	if t.Typography.FontFamily == "" {
		t.Typography.FontFamily = def.Typography.FontFamily
	}
	if t.Typography.FontSize <= 0 {
		t.Typography.FontSize = def.Typography.FontSize
	}
	if t.Typography.FontWeight <= 0 {
		t.Typography.FontWeight = def.Typography.FontWeight
	}
	if t.Typography.Color == "" {
		t.Typography.Color = def.Typography.Color
	}
	return t
}

// Validate checks the theme at the input boundary: parseable colors and
// in-range opacities and gradient stop offsets. The resolver itself never
// fails, so malformed themes must be rejected here.
func (t Theme) Validate() error {
	if len(t.Palette) == 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "palette cannot be empty")
	}
	for i, c := range t.Palette {
		if err := errors.ValidateColor("palette color", c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "palette[%d]", i)
		}
	}
	if err := errors.ValidateColor("background", t.Background); err != nil {
		return err
	}
	for id, ov := range t.StyleOverrides {
		if err := validateOverride(ov); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "style override %q", id)
		}
	}
	return nil
}

func validateOverride(ov Override) error {
	if ov.FillOpacity != nil {
		if err := errors.ValidateUnitInterval("fill opacity", *ov.FillOpacity); err != nil {
			return err
		}
	}
	if ov.Opacity != nil {
		if err := errors.ValidateUnitInterval("opacity", *ov.Opacity); err != nil {
			return err
		}
	}
	if ov.Fill != nil && ov.Fill.Kind == FillGradient && ov.Fill.Gradient != nil {
		for i, stop := range ov.Fill.Gradient.Stops {
			if err := errors.ValidateUnitInterval("stop offset", stop.Offset); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTheme, err, "gradient stop %d", i)
			}
			if err := errors.ValidateUnitInterval("stop opacity", stop.Opacity); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTheme, err, "gradient stop %d", i)
			}
			if err := errors.ValidateColor("stop color", stop.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTheme, err, "gradient stop %d", i)
			}
		}
	}
	return nil
}
