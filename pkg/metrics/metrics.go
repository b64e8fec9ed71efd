package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PagesVisited      prometheus.Counter
	ReviewsDecoded    prometheus.Counter
	EntitiesProcessed *prometheus.CounterVec
	RunRetries        prometheus.Counter
	EntityDuration    prometheus.Histogram
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		PagesVisited = promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_pages_visited_total",
			Help: "Total number of review listing pages visited.",
		})

		ReviewsDecoded = promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_reviews_decoded_total",
			Help: "Total number of review fragments decoded.",
		})

		EntitiesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_entities_processed_total",
			Help: "Total number of entities processed.",
		}, []string{"status"}) // status: committed, skipped

		RunRetries = promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_run_retries_total",
			Help: "Total number of whole-run retry attempts after a failure.",
		})

		EntityDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scraper_entity_duration_seconds",
			Help:    "Duration of one entity's full review extraction.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		})
	})
}
