package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestTotal    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Notification metrics
	NotificationMutations *prometheus.CounterVec

	// Chat metrics
	ChatMessagesSent *prometheus.CounterVec
	ChatAutoReplies  prometheus.Counter
	ChatThreadsRead  prometheus.Counter

	// Form metrics
	FormSubmissions  *prometheus.CounterVec
	FormSubmitTiming prometheus.Histogram

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsEnded   *prometheus.CounterVec
	TasksCancelled  prometheus.Counter
	ActivityPublish *prometheus.CounterVec
	ActivityFeed    *prometheus.CounterVec
}

// New creates all application metrics and registers them with reg. Tests
// pass a fresh prometheus.NewRegistry() so repeated construction is safe.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		NotificationMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "mutations_total",
			Help:      "Notification read and remove operations",
		}, []string{"operation"}),

		ChatMessagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "messages_sent_total",
			Help:      "Chat messages sent, by sender role",
		}, []string{"role"}),
		ChatAutoReplies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "auto_replies_total",
			Help:      "Automatic replies appended to chat threads",
		}),
		ChatThreadsRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "threads_marked_read_total",
			Help:      "Chat threads marked as read",
		}),

		FormSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Form submissions by form kind and outcome",
		}, []string{"form", "status"}),
		FormSubmitTiming: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "submission_duration_seconds",
			Help:      "Time spent handling a form submission",
			Buckets:   prometheus.DefBuckets,
		}),

		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Viewer sessions currently held in memory",
		}),
		SessionsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "ended_total",
			Help:      "Viewer sessions torn down",
		}, []string{"reason"}),
		TasksCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "tasks_cancelled_total",
			Help:      "Pending delayed tasks cancelled at session teardown",
		}),
		ActivityPublish: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "published_total",
			Help:      "Activity events published, by outcome",
		}, []string{"status"}),
		ActivityFeed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "feed_events_total",
			Help:      "Activity events consumed into the recent-activity feed",
		}, []string{"status"}),
	}
}
