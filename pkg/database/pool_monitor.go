package database

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 连接池指标
// 下单高峰商品行锁持有时间变长，连接等待数是最早的拥堵信号
var (
	poolOpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_open_connections",
		Help: "Open database connections",
	})
	poolInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_in_use",
		Help: "Database connections currently in use",
	})
	poolIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_idle",
		Help: "Idle database connections",
	})
	poolWaitCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_wait_count_total",
		Help: "Total connections waited for",
	})
	poolWaitSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_wait_seconds_total",
		Help: "Total time blocked waiting for a connection",
	})
)

// monitorPool 周期性上报连接池状态
func monitorPool(sqlDB *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		stats := sqlDB.Stats()
		poolOpenConnections.Set(float64(stats.OpenConnections))
		poolInUse.Set(float64(stats.InUse))
		poolIdle.Set(float64(stats.Idle))
		poolWaitCount.Set(float64(stats.WaitCount))
		poolWaitSeconds.Set(stats.WaitDuration.Seconds())
	}
}
