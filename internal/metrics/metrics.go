package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal 推荐请求数，status: ok / not_found / error
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_recommendations_total",
			Help: "Total number of recommendation requests by scene and outcome",
		},
		[]string{"scene", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medrec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// CatalogSize 已加载的药品数量
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medrec_catalog_entries",
			Help: "Number of medicines in the loaded catalog",
		},
	)
)

// RecordRecommendation 记录一次推荐结果
func RecordRecommendation(scene, status string) {
	RecommendationsTotal.WithLabelValues(scene, status).Inc()
}
