package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/abhisek/lingoz/internal/content"
)

// DefaultEnvFile is read by Load when no file is named.
const DefaultEnvFile = ".env"

// Config controls runtime behavior. Every field has an environment
// variable; values already in the environment win over the .env file.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"LINGOZ_DB"`

	// CoursePath is the course bundle to play.
	CoursePath string `env:"LINGOZ_COURSE" envDefault:"course.json"`

	// Gender selects gendered exercise variants.
	Gender string `env:"LINGOZ_GENDER" envDefault:"unset"`

	LogLevel string `env:"LINGOZ_LOG_LEVEL" envDefault:"info"`

	// Seed fixes shuffles and requeue offsets. 0 seeds from the clock.
	Seed uint64 `env:"LINGOZ_SEED" envDefault:"0"`

	gender content.Gender
	level  log.Level
}

// Load reads the optional env files (DefaultEnvFile if none are named),
// then the environment, and validates the result.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate normalizes the string fields and rejects unknown values.
func (c *Config) Validate() error {
	c.Gender = strings.ToLower(strings.TrimSpace(c.Gender))
	g, ok := content.ParseGender(c.Gender)
	if !ok {
		return fmt.Errorf("invalid gender %q (want unset, variant_a, variant_b or neutral)", c.Gender)
	}
	c.gender = g

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	c.level = lvl

	if strings.TrimSpace(c.CoursePath) == "" {
		return errors.New("course path is empty")
	}
	return nil
}

// ContentGender returns the validated gender filter.
func (c Config) ContentGender() content.Gender { return c.gender }

// Level returns the validated log level.
func (c Config) Level() log.Level { return c.level }
