package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/khodemetamir/Reversi/engine"
	"github.com/spf13/viper"
)

const configFileName = "reversi/config.yaml"

type AppConfig struct {
	Addr        string        `mapstructure:"addr"`
	Development bool          `mapstructure:"development"`
	TickMs      int           `mapstructure:"tick_ms"`
	Game        GameConfig    `mapstructure:"game"`
	Engine      engine.Config `mapstructure:"engine"`
}

type GameConfig struct {
	Difficulty string `mapstructure:"difficulty"`
	HumanColor string `mapstructure:"human_color"`
}

func setConfigDefaults(v *viper.Viper) {
	eng := engine.DefaultConfig()
	v.SetDefault("addr", ":8080")
	v.SetDefault("development", false)
	v.SetDefault("tick_ms", 50)
	v.SetDefault("game.difficulty", string(engine.DifficultyMedium))
	v.SetDefault("game.human_color", "black")
	v.SetDefault("engine.depth", eng.Depth)
	v.SetDefault("engine.endgame_empty", eng.EndgameEmpty)
	v.SetDefault("engine.use_opening_book", eng.UseOpeningBook)
	v.SetDefault("engine.random", eng.Random)
	v.SetDefault("engine.tt_size", eng.TTSize)
	v.SetDefault("engine.tt_buckets", eng.TTBuckets)
	v.SetDefault("engine.log_search_stats", eng.LogSearchStats)
}

// LoadAppConfig reads path, or reversi/config.yaml from the XDG config dirs
// when path is empty. A missing XDG file is not an error. REVERSI_*
// environment variables override both, e.g. REVERSI_ENGINE_DEPTH.
func LoadAppConfig(path string) (AppConfig, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetEnvPrefix("REVERSI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if found, err := xdg.SearchConfigFile(configFileName); err == nil {
			path = found
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMs)
	}
	if _, err := engine.ParseDifficulty(c.Game.Difficulty); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := humanSeatFromString(c.Game.HumanColor); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// ConfigStore holds the live engine config shared by the AI players.
type ConfigStore struct {
	mu     sync.RWMutex
	config engine.Config
}

func NewConfigStore(cfg engine.Config) *ConfigStore {
	return &ConfigStore{config: cfg}
}

func (c *ConfigStore) Get() engine.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig engine.Config) error {
	if err := newConfig.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
	return nil
}

// ApplyDifficulty switches to the tier's search settings while keeping the
// table size and logging choices already in place.
func (c *ConfigStore) ApplyDifficulty(d engine.Difficulty) engine.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := d.Config()
	next.TTSize = c.config.TTSize
	next.TTBuckets = c.config.TTBuckets
	next.LogSearchStats = c.config.LogSearchStats
	c.config = next
	return next
}
