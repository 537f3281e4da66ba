// Package metrics 提供基于Prometheus的指标收集
//
// 所有指标注册在独立的 Registry 上，由 HTTP 层的 /metrics 暴露。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metricsInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/metrics"
)

const namespace = "tokenfactory"

// OutcomeAccepted 请求被接受时的 outcome 标签值
const OutcomeAccepted = metricsInterface.OutcomeAccepted

// Collector 代币工厂指标收集器
type Collector struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	indexCalls    *prometheus.CounterVec
	indexDuration *prometheus.HistogramVec
}

var _ metricsInterface.Recorder = (*Collector)(nil)

// NewCollector 创建收集器并注册全部指标
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{registry: registry}

	c.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of tokenfactory requests by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	c.indexCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "calls_total",
			Help:      "Total number of authoritative index calls",
		},
		[]string{"method", "status"},
	)

	c.indexDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "call_duration_seconds",
			Help:      "Authoritative index call latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method"},
	)

	registry.MustRegister(
		c.requests,
		c.indexCalls,
		c.indexDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveRequest 记录一次请求结果
func (c *Collector) ObserveRequest(method, outcome string) {
	c.requests.WithLabelValues(method, outcome).Inc()
}

// ObserveIndexCall 记录一次权威索引调用
func (c *Collector) ObserveIndexCall(method string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.indexCalls.WithLabelValues(method, status).Inc()
	c.indexDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Registry 返回底层注册表，供其他组件（如 HTTP 中间件）注册指标
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 返回 /metrics 处理器
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
