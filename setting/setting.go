// Package setting loads the ini configuration shared by the cc driver and
// the corpus runner.
package setting

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ini "gopkg.in/ini.v1"
)

type Parser struct {
	// Names predeclared as typedefs in the file scope.
	Typedefs []string `ini:"TYPEDEFS" delim:","`
	Debug    bool     `ini:"DEBUG"`
}

type Output struct {
	// Format is none, c, json or yaml.
	Format string `ini:"FORMAT"`
	// Color is auto, always or never.
	Color string `ini:"COLOR"`
}

type Log struct {
	Level string `ini:"LEVEL"`
}

// Runner holds the corpus runner's command template. {{.In}} is replaced
// by the source file path.
type Runner struct {
	ParseCmd string        `ini:"PARSE_CMD"`
	Timeout  time.Duration `ini:"TIMEOUT"`
}

type Config struct {
	Parser Parser
	Output Output
	Log    Log
	Runner Runner
}

func Default() *Config {
	return &Config{
		Output: Output{
			Format: "none",
			Color:  "auto",
		},
		Log: Log{
			Level: "warn",
		},
		Runner: Runner{
			ParseCmd: "cc {{.In}}",
			Timeout:  5 * time.Second,
		},
	}
}

// Load reads the ini file at path over the defaults. An empty path, or a
// path that does not exist, yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	c, err := LoadSource(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading config %s", path)
	}
	return c, nil
}

// LoadSource is Load for any source ini accepts: a file name, []byte or an
// io.Reader.
func LoadSource(source interface{}) (*Config, error) {
	f, err := ini.Load(source)
	if err != nil {
		return nil, err
	}
	c := Default()
	sections := []struct {
		name string
		v    interface{}
	}{
		{"parser", &c.Parser},
		{"output", &c.Output},
		{"log", &c.Log},
		{"runner", &c.Runner},
	}
	for _, sec := range sections {
		if err := f.Section(sec.name).MapTo(sec.v); err != nil {
			return nil, errors.Wrapf(err, "mapping [%s]", sec.name)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case "none", "c", "json", "yaml":
	default:
		return errors.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("unknown color mode %q", c.Output.Color)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	if c.Runner.Timeout <= 0 {
		return errors.Errorf("runner timeout must be positive, got %s", c.Runner.Timeout)
	}
	return nil
}
