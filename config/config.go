package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config — настройки одного прогона миграции.
type Config struct {
	Source   Database `mapstructure:"source"`
	Target   Database `mapstructure:"target"`
	Database Connect  `mapstructure:"database"`
	Logging  Logging  `mapstructure:"logging"`
	Migrate  Migrate  `mapstructure:"migrate"`
}

type Database struct {
	Driver string `mapstructure:"driver"` // "mysql" | "postgres"
	DSN    string `mapstructure:"dsn"`
}

type Connect struct {
	ConnectRetries uint `mapstructure:"connect_retries"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
	File   string `mapstructure:"file"`
}

type Migrate struct {
	Flush     bool   `mapstructure:"flush"`
	DryRun    bool   `mapstructure:"dry_run"`
	BatchSize int    `mapstructure:"batch_size"`
	Report    string `mapstructure:"report"`
}

// New возвращает viper с дефолтами и env-префиксом OBLIGATE_.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("database.connect_retries", 5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("migrate.batch_size", 500)

	v.SetConfigName("obligate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/obligate")

	v.SetEnvPrefix("OBLIGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load читает файл (если есть) и собирает Config.
// path == "" — ищем obligate.yaml в стандартных местах, отсутствие файла не ошибка.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// AutomaticEnv не видит ключи без дефолтов при Unmarshal
	for _, k := range []string{"source.driver", "source.dsn", "target.driver", "target.dsn", "logging.file", "migrate.report"} {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	// quark и melange исторически жили в одной БД
	if c.Target.Driver == "" && c.Target.DSN == "" {
		c.Target = c.Source
	}
	if c.Migrate.BatchSize <= 0 {
		c.Migrate.BatchSize = 500
	}
}

func (c *Config) Validate() error {
	if c.Source.Driver == "" || c.Source.DSN == "" {
		return errors.New("source.driver and source.dsn are required")
	}
	if c.Target.Driver == "" || c.Target.DSN == "" {
		return errors.New("target.driver and target.dsn are required")
	}
	for _, d := range []string{c.Source.Driver, c.Target.Driver} {
		if d != "mysql" && d != "postgres" {
			return fmt.Errorf("unsupported database driver: %s", d)
		}
	}
	return nil
}

// SameDatabase — источник и цель указывают на одно подключение.
func (c *Config) SameDatabase() bool {
	return c.Source == c.Target
}
