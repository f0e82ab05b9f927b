package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Defaults for keys left unset.
const (
	DefaultLogLevel      = "warn"
	DefaultLoginAttempts = 3
	DefaultLoginCooldown = 30 * time.Second
)

// Config holds the CLI configuration
type Config struct {
	StorePath        string `json:"store_path,omitempty"`
	DefaultOutput    string `json:"default_output,omitempty"`
	LogLevel         string `json:"log_level,omitempty"`
	HideUnknownUsers bool   `json:"hide_unknown_users,omitempty"`
	LoginAttempts    int    `json:"login_attempts,omitempty"`
	LoginCooldown    string `json:"login_cooldown,omitempty"`

	path string
}

// Load reads config from the default path, returns defaults if file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path, returns defaults if file doesn't exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{path: path}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Path returns the file this config was loaded from and saves to
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save writes the config to its path
func (c *Config) Save() error {
	path := c.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// JSON is valid JSON5
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Keys lists every config key in declaration order
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := jsonKey(t.Field(i)); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	field, err := c.field(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", field.Interface()), nil
}

// Set parses value for the key's type, sets it and saves
func (c *Config) Set(key, value string) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		if key == "login_cooldown" {
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, value)
			}
		}
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %s", key, value)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid number for %s: %s", key, value)
		}
		field.SetInt(int64(n))
	}

	return c.Save()
}

// Unset sets a config value to its zero value and saves
func (c *Config) Unset(key string) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}
	field.Set(reflect.Zero(field.Type()))
	return c.Save()
}

// ResolvedLogLevel returns log_level or the default
func (c *Config) ResolvedLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// ResolvedLoginAttempts returns login_attempts or the default
func (c *Config) ResolvedLoginAttempts() int {
	if c.LoginAttempts <= 0 {
		return DefaultLoginAttempts
	}
	return c.LoginAttempts
}

// ResolvedLoginCooldown returns login_cooldown or the default
func (c *Config) ResolvedLoginCooldown() time.Duration {
	d, err := time.ParseDuration(c.LoginCooldown)
	if err != nil || d <= 0 {
		return DefaultLoginCooldown
	}
	return d
}

func (c *Config) field(key string) (reflect.Value, error) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; key != "" && i < v.NumField(); i++ {
		if jsonKey(t.Field(i)) == key {
			return v.Field(i), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
}

func jsonKey(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return name
}
