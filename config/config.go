package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial    SerialConfig    `yaml:"serial"`
	Inverter  InverterConfig  `yaml:"inverter"`
	Hemtjanst HemtjanstConfig `yaml:"hemtjanst"`
	Log       LogConfig       `yaml:"log"`
	Monitor   MonitorConfig   `yaml:"monitor"`
}

type SerialConfig struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

type InverterConfig struct {
	// Address of the inverter, 0 broadcasts to all devices on the bus
	Address int `yaml:"address"`
	Source  int `yaml:"source"`
	// Fields to request, empty means every known data field
	Fields           []string      `yaml:"fields"`
	FieldsPerRequest int           `yaml:"fields_per_request"`
	Interval         time.Duration `yaml:"interval"`
}

type HemtjanstConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
	Name    string `yaml:"name"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MonitorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Device:      "/dev/ttyUSB0",
			Baud:        19200,
			ReadTimeout: 3 * time.Second,
		},
		Inverter: InverterConfig{
			Address:          0,
			Source:           251,
			FieldsPerRequest: 3,
		},
		Hemtjanst: HemtjanstConfig{
			Name: "SolarMax Inverter",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Monitor: MonitorConfig{
			Addr: ":9100",
		},
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Serial.Device == "" {
		return fmt.Errorf("serial.device is empty")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud)
	}
	if c.Serial.ReadTimeout < 0 {
		return fmt.Errorf("serial.read_timeout must not be negative")
	}
	if c.Inverter.Address < 0 || c.Inverter.Address > 255 {
		return fmt.Errorf("inverter.address %d out of range 0-255", c.Inverter.Address)
	}
	if c.Inverter.Source < 0 || c.Inverter.Source > 255 {
		return fmt.Errorf("inverter.source %d out of range 0-255", c.Inverter.Source)
	}
	if c.Inverter.FieldsPerRequest < 1 {
		return fmt.Errorf("inverter.fields_per_request must be at least 1")
	}
	if c.Inverter.Interval < 0 {
		return fmt.Errorf("inverter.interval must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q is neither text nor json", c.Log.Format)
	}
	return nil
}

// Topic returns the hemtjanst topic, derived from the inverter address
// unless configured.
func (c *Config) Topic() string {
	if c.Hemtjanst.Topic != "" {
		return c.Hemtjanst.Topic
	}
	return fmt.Sprintf("solarmax/%d", c.Inverter.Address)
}
