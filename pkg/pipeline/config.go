package pipeline

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roadnet/pkg/errors"
)

// LoadConfig reads generation options from a TOML file:
//
//	seed = 7
//	boxes = 5
//	cities = 6
//	min_city_spacing = 4
//
//	# optional explicit stack, topmost first
//	[[box]]
//	left = 0
//	top = 0
//	right = 20
//	bottom = 12
//
// Unknown keys are rejected. Defaults are not applied.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes TOML config text.
func ParseConfig(data string) (Options, error) {
	var opts Options
	md, err := toml.Decode(data, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return opts, nil
}
