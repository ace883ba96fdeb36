package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultChecklistName  = "todo.md"
	DefaultJournalName    = "journal.db"
	DefaultLogLevel       = "info"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TODO_CONFIG"

	appDirName = "tickmd"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	MoveUp   string `toml:"move_up"`
	MoveDown string `toml:"move_down"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
}

type Config struct {
	File        string `toml:"file"`
	JournalPath string `toml:"journal_path"`
	LogLevel    string `toml:"log_level"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath picks $TODO_CONFIG, then the user config dir, then the
// working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet. An empty journal path resolves next to the
// config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.withDefaults(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg.withDefaults(path), nil
}

func (c Config) withDefaults(path string) Config {
	if c.File == "" {
		c.File = DefaultChecklistName
	}
	if c.JournalPath == "" {
		c.JournalPath = filepath.Join(filepath.Dir(path), DefaultJournalName)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Keys = c.Keys.withDefaults()
	return c
}

func (k Keymap) withDefaults() Keymap {
	d := defaultConfig().Keys
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Add, d.Add)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.MoveUp, d.MoveUp)
	fill(&k.MoveDown, d.MoveDown)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	return k
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		File:     DefaultChecklistName,
		LogLevel: DefaultLogLevel,
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Toggle:   " ",
			Delete:   "d",
			MoveUp:   "K",
			MoveDown: "J",
			Confirm:  "enter",
			Cancel:   "esc",
		},
	}
}
