// Package metrics は塗り絵ブック生成の Prometheus メトリクスを定義します。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coloring_kit"

// 結果ラベルの値
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	// ModelCalls はモデル呼び出し回数を種類 (scenes, cover, page, chat) と結果ごとに数えます。
	ModelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "model",
		Name:      "calls_total",
		Help:      "Number of generative model calls by kind and result.",
	}, []string{"kind", "result"})

	// ModelLatency はモデル呼び出しの所要時間です。
	ModelLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "model",
		Name:      "call_duration_seconds",
		Help:      "Latency of generative model calls.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	}, []string{"kind"})

	// BooksGenerated は生成が完了・失敗したブック数です。
	BooksGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "books",
		Name:      "generated_total",
		Help:      "Number of coloring books generated by result.",
	}, []string{"result"})

	// HTTPRequests は HTTP リクエスト数です。
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
)

// ObserveModelCall はモデル呼び出し1回分の結果と所要時間を記録します。
func ObserveModelCall(kind string, start time.Time, err error) {
	ModelLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	ModelCalls.WithLabelValues(kind, resultLabel(err)).Inc()
}

// ObserveBook はブック生成1回分の結果を記録します。
func ObserveBook(err error) {
	BooksGenerated.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
