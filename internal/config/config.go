// Package config loads the renderer's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"recoveryui/gui/uierr"
)

// Config is the full configuration document.
type Config struct {
	// Theme is a zip archive or an unpacked theme directory.
	Theme string `yaml:"theme" validate:"required"`
	// ThemeFile is the description file inside the theme.
	ThemeFile string `yaml:"theme_file" validate:"required"`
	// ResDir holds images/ and fonts/ used when the theme is not an archive.
	ResDir string `yaml:"res_dir"`

	Scratch Scratch `yaml:"scratch"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
	Strings Strings `yaml:"strings"`

	VibratorPath string            `yaml:"vibrator_path"`
	Variables    map[string]string `yaml:"variables"`
}

// Scratch configures the temporary files used while loading assets.
type Scratch struct {
	Path       string `yaml:"path" validate:"required"`
	FontTmpDir string `yaml:"font_tmp_dir" validate:"required"`
}

// Display selects and sizes the framebuffer backend.
type Display struct {
	Backend string `yaml:"backend" validate:"required,oneof=window headless mmap fbdev"`
	// Device is the ashmem or fbdev node for device backends.
	Device         string `yaml:"device" validate:"required_if=Backend mmap,required_if=Backend fbdev"`
	BrightnessPath string `yaml:"brightness_path"`
	MaxBrightness  int    `yaml:"max_brightness" validate:"min=0"`

	Width  int `yaml:"width" validate:"min=0,max=8192"`
	Height int `yaml:"height" validate:"min=0,max=8192"`
	// ThemeWidth and ThemeHeight override the theme's design resolution.
	ThemeWidth  int `yaml:"theme_width" validate:"min=0,max=8192"`
	ThemeHeight int `yaml:"theme_height" validate:"min=0,max=8192"`

	Hz    int    `yaml:"hz" validate:"min=0,max=240"`
	Ticks uint64 `yaml:"ticks"`
}

type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

type Strings struct {
	// TrackMisses registers placeholders for missing string lookups.
	TrackMisses *bool `yaml:"track_misses"`
}

// TrackMissesOrDefault reports the toggle, true when unset.
func (s Strings) TrackMissesOrDefault() bool {
	return s.TrackMisses == nil || *s.TrackMisses
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ThemeFile: "ui.xml",
		Scratch: Scratch{
			Path:       "/tmp/extract.bin",
			FontTmpDir: "/tmp",
		},
		Display: Display{
			Backend: "window",
			Width:   480,
			Height:  800,
			Hz:      60,
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if cfg == nil {
		return uierr.New("config.Validate", uierr.KindConfig, "", errors.New("configuration is nil"))
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return uierr.New("config.Validate", uierr.KindConfig, "", errors.New(strings.Join(msgs, "; ")))
		}
		return uierr.New("config.Validate", uierr.KindConfig, "", err)
	}
	return nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, uierr.New("config.Parse", uierr.KindConfig, "", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, uierr.New("config.Load", uierr.KindConfig, path, err)
	}
	return Parse(data)
}
