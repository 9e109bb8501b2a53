// Package config loads hd settings from defaults, a YAML file, HD_* environment
// variables and command-line overrides, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"hd-go/pkg/hexdump"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Unit       string `mapstructure:"unit"`
	BigEndian  bool   `mapstructure:"big_endian"`
	Head       int    `mapstructure:"head"`
	Tail       int    `mapstructure:"tail"`
	Skip       int64  `mapstructure:"skip"`
	Wide       bool   `mapstructure:"wide"`
	Out        string `mapstructure:"out"`
	Err        string `mapstructure:"err"`
	LogDB      string `mapstructure:"log_db"`
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"` // file actually read, if any
}

func DefaultConfig() *Config {
	return &Config{
		Unit: hexdump.UnitByte.String(),
	}
}

// Load reads the configuration. configFile, when set, must exist; otherwise hd.yaml
// is looked up in the working directory, $HOME/.hd-go and /etc/hd-go. overrides
// holds values given on the command line, keyed like the mapstructure tags.
func Load(configFile string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("unit", def.Unit)
	for _, key := range []string{"big_endian", "wide", "debug"} {
		v.SetDefault(key, false)
	}
	for _, key := range []string{"head", "tail", "skip"} {
		v.SetDefault(key, 0)
	}
	for _, key := range []string{"out", "err", "log_db"} {
		v.SetDefault(key, "")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("hd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hd-go")
		v.AddConfigPath("/etc/hd-go/")
	}
	v.SetEnvPrefix("HD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	for key, val := range overrides {
		v.Set(key, val)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(numberHook))); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// numberHook lets numeric settings be written with a base prefix, e.g. skip: 0x200.
func numberHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int64:
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return 0, nil
		}
		return ParseNumber(s)
	}
	return data, nil
}

// ParseNumber parses a decimal, 0x hexadecimal or 0 octal integer.
func ParseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalid, s)
	}
	return n, nil
}

func (c *Config) Validate() error {
	if _, err := hexdump.ParseUnit(c.Unit); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Head < 0 {
		return fmt.Errorf("%w: head must not be negative, got %d", ErrInvalid, c.Head)
	}
	if c.Tail < 0 {
		return fmt.Errorf("%w: tail must not be negative, got %d", ErrInvalid, c.Tail)
	}
	if c.Skip < 0 {
		return fmt.Errorf("%w: skip must not be negative, got %d", ErrInvalid, c.Skip)
	}
	return nil
}

// Options returns the dump options described by the configuration. It assumes a
// validated configuration.
func (c *Config) Options() hexdump.Options {
	unit, _ := hexdump.ParseUnit(c.Unit)
	return hexdump.Options{
		Unit:      unit,
		BigEndian: c.BigEndian,
		Head:      c.Head,
		Tail:      c.Tail,
		Wide:      c.Wide,
	}
}
