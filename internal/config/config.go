// Package config loads partkit settings from a YAML file and PARTKIT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

const (
	envPrefix = "PARTKIT"

	// LocalFileName is looked up in the working directory.
	LocalFileName = ".partkit.yaml"

	// UserDirName and UserFileName form $HOME/.partkit/config.yaml.
	UserDirName  = ".partkit"
	UserFileName = "config.yaml"

	keyFlashSize      = "flash_size"
	keyBackup         = "backup"
	keyInputEncoding  = "input_encoding"
	keyOutputEncoding = "output_encoding"
	keyWithBOM        = "with_bom"
	keyRowName        = "default_row.name"
	keyRowType        = "default_row.type"
	keyRowSubType     = "default_row.subtype"
	keyRowSize        = "default_row.size"
	keyRowFlags       = "default_row.flags"
)

// DefaultConfigYAML documents every key with its default.
const DefaultConfigYAML = `# partkit configuration

# Flash size: 4MB, 8MB, 16MB, 32MB or any size ("0x600000", "6M")
flash_size: 4MB

# Copy the file to <file>.bak before writing it
backup: true

# Input encoding: empty to detect, or UTF-8, UTF-16LE, WINDOWS-1252
input_encoding: ""

# Output encoding: UTF-8 or UTF-16LE
output_encoding: UTF-8
with_bom: false

# Row added by "append" and the explorer's "a" key
default_row:
  name: new_part
  type: data
  subtype: undefined
  size: 4K
  flags: ""
`

// RowConfig is the configurable default row.
type RowConfig struct {
	Name    string `mapstructure:"name"`
	Type    string `mapstructure:"type"`
	SubType string `mapstructure:"subtype"`
	Size    string `mapstructure:"size"`
	Flags   string `mapstructure:"flags"`
}

// Config holds resolved settings.
type Config struct {
	FlashSize      string    `mapstructure:"flash_size"`
	Backup         bool      `mapstructure:"backup"`
	InputEncoding  string    `mapstructure:"input_encoding"`
	OutputEncoding string    `mapstructure:"output_encoding"`
	WithBOM        bool      `mapstructure:"with_bom"`
	DefaultRow     RowConfig `mapstructure:"default_row"`

	// Source is the file the settings were read from; empty when only
	// defaults and environment applied.
	Source string `mapstructure:"-"`
}

// Load reads settings. An explicit path must exist; otherwise
// ./.partkit.yaml and then $HOME/.partkit/config.yaml are tried and a
// missing file is not an error.
func Load(path string) (*Config, error) {
	return load(path, searchPaths())
}

// UserPath returns the per-user config file, $HOME/.partkit/config.yaml.
func UserPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, UserDirName, UserFileName), nil
}

// searchPaths lists the config files Load tries, in order.
func searchPaths() []string {
	paths := []string{LocalFileName}
	if user, err := UserPath(); err == nil {
		paths = append(paths, user)
	}
	return paths
}

func load(explicit string, candidates []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := explicit
	if source == "" {
		source = firstExisting(candidates)
	}

	if source != "" {
		v.SetConfigFile(source)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) || explicit != "" {
				return nil, fmt.Errorf("read config %s: %w", source, err)
			}
			source = ""
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = source

	if _, err := cfg.Capacity(); err != nil {
		return nil, fmt.Errorf("config %s: %w", keyFlashSize, err)
	}
	if err := cfg.Row().Check(); err != nil {
		return nil, fmt.Errorf("config default_row: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	row := types.DefaultRow()
	v.SetDefault(keyFlashSize, types.FlashSizeLabel(types.DefaultCapacity))
	v.SetDefault(keyBackup, true)
	v.SetDefault(keyInputEncoding, "")
	v.SetDefault(keyOutputEncoding, types.EncodingUTF8)
	v.SetDefault(keyWithBOM, false)
	v.SetDefault(keyRowName, row.Name)
	v.SetDefault(keyRowType, row.Type)
	v.SetDefault(keyRowSubType, row.SubType)
	v.SetDefault(keyRowSize, row.Size)
	v.SetDefault(keyRowFlags, row.Flags)
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Capacity resolves flash_size.
func (c *Config) Capacity() (types.Quantity, error) {
	return types.ParseFlashSize(c.FlashSize)
}

// Row returns the default row.
func (c *Config) Row() types.Row {
	return types.Row{
		Name:    c.DefaultRow.Name,
		Type:    c.DefaultRow.Type,
		SubType: c.DefaultRow.SubType,
		Size:    c.DefaultRow.Size,
		Flags:   c.DefaultRow.Flags,
	}
}

// PartitionOptions converts the settings into file layer options.
func (c *Config) PartitionOptions() (*partition.Options, error) {
	capacity, err := c.Capacity()
	if err != nil {
		return nil, err
	}
	row := c.Row()
	return &partition.Options{
		Capacity:       capacity,
		DefaultRow:     &row,
		Encoding:       c.InputEncoding,
		OutputEncoding: c.OutputEncoding,
		WithBOM:        c.WithBOM,
		CreateBackup:   c.Backup,
	}, nil
}

// WriteDefault writes DefaultConfigYAML to path unless a file is already
// there. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("write config file: %w", err)
	}
	return true, nil
}
