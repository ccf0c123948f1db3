package offheap

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "offheap"

// Collectors returns prometheus collectors reading the driver counters.
func (p *OffheapDriver) Collectors(namespace string) []prometheus.Collector {
	counter := func(name, help string, load func() int64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(load()) })
	}

	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "blocks_active",
			Help:      "Number of live control blocks.",
		}, func() float64 { return float64(p.activeBlocksNum.Load()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "blocks_limit",
			Help:      "Control block limit, -1 when unlimited.",
		}, func() float64 { return float64(p.blocksLimit.Load()) }),
		counter("blocks_allocated_total", "Control blocks allocated.", p.allocatedBlocksNum.Load),
		counter("blocks_released_total", "Control blocks released.", p.releasedBlocksNum.Load),
		counter("objects_destroyed_total", "Managed objects destroyed through a control block.", p.destroyedObjectsNum.Load),
		counter("block_alloc_failures_total", "Control block allocations refused by the limit.", p.allocFailuresNum.Load),
	}
}

// RegisterMetrics registers the driver collectors on reg. Either all of them
// are registered or, on error, none.
func (p *OffheapDriver) RegisterMetrics(reg prometheus.Registerer, namespace string) error {
	return RegisterCollectors(reg, p.Collectors(namespace))
}

func RegisterCollectors(reg prometheus.Registerer, collectors []prometheus.Collector) error {
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			UnregisterCollectors(reg, collectors[:i])
			return err
		}
	}
	return nil
}

func UnregisterCollectors(reg prometheus.Registerer, collectors []prometheus.Collector) {
	for _, c := range collectors {
		reg.Unregister(c)
	}
}
