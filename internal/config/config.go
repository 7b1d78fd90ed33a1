package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Weights tune the one-ply heuristic bot.
type Weights struct {
	WCapture int `json:"capture" yaml:"capture"`
	WFlip    int `json:"flip" yaml:"flip"`
	WDanger  int `json:"danger" yaml:"danger"`
	WCenter  int `json:"center" yaml:"center"`
	WTrade   int `json:"trade" yaml:"trade"`
}

// ErrInvalidWeights rejects weights the heuristic cannot use.
var ErrInvalidWeights = errors.New("invalid heuristic weights")

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for name, v := range map[string]int{
		"capture": w.WCapture,
		"flip":    w.WFlip,
		"danger":  w.WDanger,
		"center":  w.WCenter,
		"trade":   w.WTrade,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is %d", ErrInvalidWeights, name, v)
		}
	}
	return nil
}

type Config struct {
	HTTPAddr      string `yaml:"http_addr"`
	LogLevel      string `yaml:"log_level"`
	BindingPolicy string `yaml:"binding_policy"`

	BotKind      string `yaml:"bot_kind"`
	BotTimeoutMS int    `yaml:"bot_timeout_ms"`
	BotScript    string `yaml:"bot_script"`
	BotCmd       string `yaml:"bot_cmd"`

	Weights Weights `yaml:"weights"`
}

// DefaultFile is where Load looks for a YAML file when CONFIG_FILE is unset.
var DefaultFile = filepath.Join(xdg.ConfigHome, "animal-chess", "config.yaml")

func Default() Config {
	return Config{
		HTTPAddr:      ":8080",
		LogLevel:      "info",
		BindingPolicy: "flipper",
		BotKind:       "greedy",
		BotTimeoutMS:  3000,
		Weights: Weights{
			WCapture: 10,
			WFlip:    4,
			WDanger:  8,
			WCenter:  6,
			WTrade:   3,
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load layers the defaults, an optional YAML file and the environment (including a .env file
// in the working directory), in that order.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := LoadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the file keep their value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	logrus.WithField("path", path).Debug("loaded config file")
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.BindingPolicy = getenv("BINDING_POLICY", c.BindingPolicy)

	c.BotKind = getenv("BOT_KIND", c.BotKind)
	c.BotTimeoutMS = getenvInt("BOT_TIMEOUT_MS", c.BotTimeoutMS)
	c.BotScript = getenv("BOT_SCRIPT", c.BotScript)
	c.BotCmd = getenv("BOT_CMD", c.BotCmd)

	c.Weights.WCapture = getenvInt("W_CAPTURE", c.Weights.WCapture)
	c.Weights.WFlip = getenvInt("W_FLIP", c.Weights.WFlip)
	c.Weights.WDanger = getenvInt("W_DANGER", c.Weights.WDanger)
	c.Weights.WCenter = getenvInt("W_CENTER", c.Weights.WCenter)
	c.Weights.WTrade = getenvInt("W_TRADE", c.Weights.WTrade)
}

// BotTimeout bounds one automated decision. Zero means no limit.
func (c Config) BotTimeout() time.Duration {
	if c.BotTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.BotTimeoutMS) * time.Millisecond
}

// Level parses LogLevel, falling back to Info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
