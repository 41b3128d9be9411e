// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

type Config struct {
	App     App     `mapstructure:",squash"`
	Server  Server  `mapstructure:",squash"`
	Storage Storage `mapstructure:",squash"`
	Shop    Shop    `mapstructure:",squash"`
	Printer Printer `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Addr            string        `mapstructure:"http_addr"`
	StaticPath      string        `mapstructure:"static_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Storage struct {
	DBPath string `mapstructure:"db_path"`
}

type Shop struct {
	Name     string       `mapstructure:"shop_name"`
	Locale   language.Tag `mapstructure:"locale"`
	Timezone string       `mapstructure:"timezone"`
}

type Printer struct {
	Type    string `mapstructure:"printer_type"`
	USBPath string `mapstructure:"printer_usb_path"`
	Address string `mapstructure:"printer_address"`
	Width   int    `mapstructure:"printer_width"`
}

const (
	PrinterNone    = "none"
	PrinterUSB     = "usb"
	PrinterNetwork = "network"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("HTTP_ADDR", "127.0.0.1:8080")
	v.SetDefault("STATIC_PATH", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_PATH", "./data/vereinskasse.db")

	v.SetDefault("SHOP_NAME", "VEREINSKASSE")
	v.SetDefault("LOCALE", "de")
	v.SetDefault("TIMEZONE", "Local")

	v.SetDefault("PRINTER_TYPE", PrinterNone)
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 48)
}

// Load reads envFile (if it exists) into the process environment and
// decodes the environment over the defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
			slog.Debug("No env file, using environment only", "path", envFile)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToLanguageTagHookFunc(),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Printer.Type = strings.ToLower(c.Printer.Type)
	switch c.Printer.Type {
	case PrinterNone, PrinterUSB:
	case PrinterNetwork:
		if c.Printer.Address == "" {
			return errors.New("PRINTER_ADDRESS is required for a network printer")
		}
	default:
		return fmt.Errorf("unknown PRINTER_TYPE %q", c.Printer.Type)
	}
	if c.Printer.Width < 16 {
		return fmt.Errorf("PRINTER_WIDTH must be at least 16, got %d", c.Printer.Width)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Shop.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Shop.Timezone, err)
	}
	return loc, nil
}

func stringToLanguageTagHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(language.Tag{}) {
			return data, nil
		}
		tag, err := language.Parse(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid LOCALE %q: %w", data, err)
		}
		return tag, nil
	}
}
