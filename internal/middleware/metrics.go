package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nexum_redis_errors_total",
		Help: "Number of Redis command errors by command.",
	},
	[]string{"command"},
)

// BanSweepDeactivated counts ban rows deactivated by the expiry sweep.
var BanSweepDeactivated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "nexum_ban_sweep_deactivated_total",
		Help: "Number of expired bans deactivated by cleanup sweeps.",
	},
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
