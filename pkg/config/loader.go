package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/c9s/bbands/pkg/indicator"
	"github.com/c9s/bbands/pkg/style"
	"github.com/c9s/bbands/pkg/types"
)

const DefaultConfigFile = "bbands.yaml"

type ServerConfig struct {
	Bind string `json:"bind" yaml:"bind"`

	// DataFile is the bar file served by GET /api/bollinger
	DataFile string `json:"data" yaml:"data"`

	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`

	// File enables the rotating json log file
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

type Config struct {
	Bollinger indicator.BOLLParams `json:"bollinger" yaml:"bollinger"`
	Style     style.BandsStyle     `json:"style" yaml:"style"`
	Server    ServerConfig         `json:"server" yaml:"server"`
	Logging   LoggingConfig        `json:"logging" yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Bollinger: indicator.BOLLParams{
			Length: 20,
			K:      2,
			Offset: 0,
			Source: types.SourceClose,
			MAType: indicator.MATypeSMA,
		},
		Style: style.DefaultBandsStyle(),
		Server: ServerConfig{
			Bind:         ":8080",
			DataFile:     "data/ohlcv.json",
			AllowOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the yaml file over the defaults and validates the result.
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	return Parse(content)
}

// Parse decodes yaml content over the defaults and validates the result.
func Parse(content []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, errors.Wrap(err, "config yaml parsing error")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	err := multierr.Combine(
		c.Bollinger.Validate(),
		c.Style.Validate(),
	)

	if _, levelErr := logrus.ParseLevel(c.Logging.Level); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}

	return err
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
