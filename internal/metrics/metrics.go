package metrics

import (
	"cryptoalert-telegram-bot/internal/database"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

var (
	CommandsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptoalert",
		Subsystem: "telegram_bot",
		Name:      "commands_processed",
		Help:      "The total number of processed commands",
	})
	MessagesHandled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptoalert",
		Subsystem: "telegram_bot",
		Name:      "messages_handled",
		Help:      "The total number of handled messages",
	})
	AlertsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptoalert",
		Subsystem: "telegram_bot",
		Name:      "alerts_created",
		Help:      "The total number of price alerts created",
	})
	AlertsTriggered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptoalert",
		Subsystem: "telegram_bot",
		Name:      "alerts_triggered",
		Help:      "The total number of price alerts that fired",
	})
	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptoalert",
		Subsystem: "telegram_bot",
		Name:      "notification_failures",
		Help:      "The total number of trigger notifications that failed to send",
	})
	SchedulerTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptoalert",
		Subsystem: "telegram_bot",
		Name:      "scheduler_ticks",
		Help:      "The total number of completed alert checker ticks",
	})
)

// persisted maps counters to their snapshot rows in the metrics table.
var persisted = map[string]prometheus.Counter{
	"commands_processed":    CommandsProcessed,
	"messages_handled":      MessagesHandled,
	"alerts_created":        AlertsCreated,
	"alerts_triggered":      AlertsTriggered,
	"notification_failures": NotificationFailures,
	"scheduler_ticks":       SchedulerTicks,
}

func init() {
	for _, c := range persisted {
		prometheus.MustRegister(c)
	}
}

// LoadFromDB restores counter values snapshotted by a previous run. Counters
// only ever grow, so Add with the stored value is enough.
func LoadFromDB() {
	for name, counter := range persisted {
		value, err := database.GetMetric(name)
		if err != nil {
			log.Errorf("Failed to load metric %s: %v", name, err)
			continue
		}
		counter.Add(value)
	}
	log.Info("Metrics loaded from database.")
}

// SaveToDB snapshots the current counter values into the metrics table.
func SaveToDB() {
	for name, counter := range persisted {
		if err := database.SaveMetric(name, CounterValue(counter)); err != nil {
			log.Errorf("Failed to save metric %s: %v", name, err)
		}
	}
	log.Info("Metrics saved to database.")
}

// CounterValue reads the current value out of a prometheus counter.
func CounterValue(metric prometheus.Collector) float64 {
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Errorf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		return metricProto.Counter.GetValue()
	}
	if metricProto.Gauge != nil {
		return metricProto.Gauge.GetValue()
	}
	return 0
}
