package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tf"
)

const (
	KeyTool       = "tool"
	KeyCollection = "collection"
	KeyUser       = "user"
	KeyDomain     = "domain"
	KeyProxy      = "proxy"

	envPrefix = "TFX"
	// PasswordEnv is the only place the password is read from.
	PasswordEnv = "TFX_PASSWORD"
)

// Keys are the settings that may be stored in the config file.
var Keys = []string{KeyTool, KeyCollection, KeyUser, KeyDomain, KeyProxy}

// Config manages the tfx settings stored at ~/.config/tfx/config.json.
// Values resolve, highest first: bound flags, TFX_* environment variables,
// the config file.
type Config struct {
	path string
	// v is the effective view, file holds only what Save writes back.
	v    *viper.Viper
	file *viper.Viper
}

// New creates a Config. If configPath is empty, uses the default location.
func New(configPath string) *Config {
	if configPath == "" {
		home, _ := os.UserHomeDir()
		configPath = filepath.Join(home, ".config", "tfx", "config.json")
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return &Config{path: expandPath(configPath), v: v, file: viper.New()}
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Load reads the config file. A missing file is not an error.
func (c *Config) Load() error {
	c.file.SetConfigFile(c.path)
	if filepath.Ext(c.path) == "" {
		c.file.SetConfigType("json")
	}
	if err := c.file.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", c.path, err)
		}
	}
	if c.file.IsSet("password") {
		slog.Warn("ignoring password in config file, set "+PasswordEnv+" instead", "path", c.path)
	}
	stored := map[string]any{}
	for _, key := range Keys {
		if c.file.IsSet(key) {
			stored[key] = c.file.GetString(key)
		}
	}
	return c.v.MergeConfigMap(stored)
}

// BindFlag lets a command line flag override key when it is set.
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	if !isKey(key) {
		return unknownKey(key)
	}
	return c.v.BindPFlag(key, flag)
}

// Get returns the effective value of key.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Set stores value for key, to be written by Save. An empty value removes
// the key from the file.
func (c *Config) Set(key, value string) error {
	if !isKey(key) {
		return unknownKey(key)
	}
	c.file.Set(key, value)
	c.v.Set(key, value)
	return nil
}

// Save writes the stored keys to disk, creating directories as needed.
func (c *Config) Save() error {
	out := viper.New()
	for _, key := range Keys {
		if value := c.file.GetString(key); value != "" {
			out.Set(key, value)
		}
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	if filepath.Ext(c.path) == "" {
		out.SetConfigType("json")
	}
	return out.WriteConfigAs(c.path)
}

// Settings returns the effective value of every key.
func (c *Config) Settings() map[string]string {
	settings := make(map[string]string, len(Keys))
	for _, key := range Keys {
		settings[key] = c.Get(key)
	}
	return settings
}

// Password reads the password from the environment.
func (c *Config) Password() string {
	return os.Getenv(PasswordEnv)
}

// ToolPath is the configured tf location with ~ expanded.
func (c *Config) ToolPath() string {
	return expandPath(c.Get(KeyTool))
}

// Context builds the server context for tf commands. It is nil when no
// collection is configured, which lets tf infer it from the workspace. A
// user of the form DOMAIN\user sets the domain too.
func (c *Config) Context() *tf.Context {
	collection := c.Get(KeyCollection)
	if collection == "" {
		return nil
	}
	ctx := &tf.Context{Collection: collection, Proxy: c.Get(KeyProxy)}
	if user := c.Get(KeyUser); user != "" {
		domain := c.Get(KeyDomain)
		if d, u, ok := strings.Cut(user, `\`); ok {
			domain, user = d, u
		}
		ctx.Credentials = &tf.Credentials{Domain: domain, User: user, Password: c.Password()}
	}
	return ctx
}

func isKey(key string) bool {
	return slices.Contains(Keys, key)
}

func unknownKey(key string) error {
	return &errs.ArgumentError{
		Command: "config",
		Field:   fmt.Sprintf("key %q", key),
		Reason:  "is not one of " + strings.Join(Keys, ", "),
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
