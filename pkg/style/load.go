package style

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pieforge/pieforge/pkg/errors"
)

// LoadTheme reads a theme file, fills unset fields from the default theme,
// and validates the result. TOML and JSON are supported, dispatched on the
// file extension.
func LoadTheme(path string) (Theme, error) {
	var t Theme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &t); err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parsing theme %s", path)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading theme %s", path)
		}
		if err := json.Unmarshal(data, &t); err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parsing theme %s", path)
		}
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unsupported theme format %q (want .toml or .json)", filepath.Ext(path))
	}

	t = t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}
