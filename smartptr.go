package smartptr

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"soloos/smartptr/offheap"
)

// Setup applies cfg to the process-wide state of the offheap package: the
// logger, the default driver limit and, when enabled, its metrics on reg.
// It must run before any pointer is created through the default driver.
// On error the driver, the registry and the offheap logger are unchanged.
func Setup(cfg Config, reg prometheus.Registerer) (*zap.Logger, error) {
	var (
		driver     = &offheap.DefaultOffheapDriver
		logger     *zap.Logger
		collectors []prometheus.Collector
		err        error
	)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	if n := driver.ActiveBlocks(); n > 0 {
		return nil, errors.Wrapf(offheap.ErrDriverBusy, "init default offheap driver: %d active blocks", n)
	}

	logger, err = cfg.BuildLogger()
	if err != nil {
		return nil, err
	}

	if cfg.Metrics.Enable {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		collectors = driver.Collectors(cfg.Metrics.Namespace)
		err = offheap.RegisterCollectors(reg, collectors)
		if err != nil {
			_ = logger.Sync()
			return nil, errors.Wrap(err, "register offheap metrics")
		}
	}

	err = driver.Init(cfg.BlocksLimit)
	if err != nil {
		if collectors != nil {
			offheap.UnregisterCollectors(reg, collectors)
		}
		_ = logger.Sync()
		return nil, errors.Wrap(err, "init default offheap driver")
	}

	offheap.SetLogger(logger)
	logger.Info("smartptr ready",
		zap.Int32("blocks-limit", cfg.BlocksLimit),
		zap.Bool("metrics", cfg.Metrics.Enable))

	return logger, nil
}
