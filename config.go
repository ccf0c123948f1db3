// Package smartptr wires the offheap ownership handles into a process: it
// loads the TOML configuration, installs the logger and registers metrics.
package smartptr

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"soloos/smartptr/offheap"
)

const DefaultMetricsNamespace = "smartptr"

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type MetricsConfig struct {
	Enable    bool   `toml:"enable"`
	Namespace string `toml:"namespace"`
}

type Config struct {
	// BlocksLimit caps live control blocks of the default driver, -1 for no cap.
	BlocksLimit int32         `toml:"blocks-limit"`
	Log         LogConfig     `toml:"log"`
	Metrics     MetricsConfig `toml:"metrics"`
}

func DefaultConfig() Config {
	return Config{
		BlocksLimit: offheap.DefaultBlocksLimit,
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// LoadConfig decodes path over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	var (
		cfg  = DefaultConfig()
		meta toml.MetaData
		err  error
	)

	meta, err = toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s has unknown keys %v", path, undecoded)
	}

	err = cfg.Validate()
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (p *Config) Validate() error {
	var err error

	if p.BlocksLimit < offheap.BlocksUnlimited {
		err = multierr.Append(err, errors.Errorf("blocks-limit must be >= -1, got %d", p.BlocksLimit))
	}
	if _, lvlErr := zapcore.ParseLevel(p.Log.Level); lvlErr != nil {
		err = multierr.Append(err, errors.Wrap(lvlErr, "log.level"))
	}
	if p.Metrics.Enable && p.Metrics.Namespace == "" {
		err = multierr.Append(err, errors.New("metrics.namespace must be set when metrics are enabled"))
	}

	return err
}

func (p *Config) BuildLogger() (*zap.Logger, error) {
	var (
		level   zapcore.Level
		zapConf zap.Config
		err     error
	)

	level, err = zapcore.ParseLevel(p.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}

	if p.Log.Development {
		zapConf = zap.NewDevelopmentConfig()
	} else {
		zapConf = zap.NewProductionConfig()
	}
	zapConf.Level = zap.NewAtomicLevelAt(level)

	return zapConf.Build()
}
