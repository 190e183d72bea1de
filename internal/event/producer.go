package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	"github.com/egalea504/LightBnB/internal/domain"
	pkgkafka "github.com/egalea504/LightBnB/pkg/kafka"
	"github.com/egalea504/LightBnB/pkg/logger"
)

// Topics for LightBnB domain events.
var (
	TopicUserRegistered  = pkgkafka.Topic("user", "registered")
	TopicPropertyCreated = pkgkafka.Topic("property", "created")
)

const (
	AggregateTypeUser     = "user"
	AggregateTypeProperty = "property"

	// Source identifies events produced by this service.
	Source = "lightbnb"
)

// UserRegisteredData is the payload of a user.registered event.
// The password is never published.
type UserRegisteredData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PropertyCreatedData is the payload of a property.created event.
type PropertyCreatedData struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"owner_id"`
	Title        string `json:"title"`
	City         string `json:"city"`
	Country      string `json:"country"`
	CostPerNight int64  `json:"cost_per_night"`
	Active       bool   `json:"active"`
}

// ErrCircuitOpen is returned while the breaker rejects publishes.
var ErrCircuitOpen = gobreaker.ErrOpenState

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "lightbnb_event_breaker_state",
		Help: "State of the event publisher circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// Sender writes an event envelope to a topic. *pkgkafka.Producer satisfies it.
type Sender interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// BreakerConfig tunes the circuit breaker guarding the sender.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig trips after half of at least five publishes fail and
// probes again after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "kafka-publisher",
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// Producer publishes LightBnB domain events through a circuit breaker so a
// down broker fails fast instead of stalling every request.
type Producer struct {
	sender  Sender
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

// NewProducer creates a producer over sender.
func NewProducer(sender Sender, cfg BreakerConfig, log *slog.Logger) *Producer {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("event publisher breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}
	breakerState.WithLabelValues(cfg.Name).Set(0)

	return &Producer{
		sender:  sender,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		logger:  log,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{ID: user.ID, Name: user.Name, Email: user.Email}
	return p.publish(ctx, TopicUserRegistered, "user.registered", AggregateTypeUser, user.ID, data)
}

// PublishPropertyCreated publishes a property.created event.
func (p *Producer) PublishPropertyCreated(ctx context.Context, prop *domain.Property) error {
	data := PropertyCreatedData{
		ID:           prop.ID,
		OwnerID:      prop.OwnerID,
		Title:        prop.Title,
		City:         prop.City,
		Country:      prop.Country,
		CostPerNight: prop.CostPerNight,
		Active:       prop.Active,
	}
	return p.publish(ctx, TopicPropertyCreated, "property.created", AggregateTypeProperty, prop.ID, data)
}

// State reports the breaker state.
func (p *Producer) State() gobreaker.State {
	return p.breaker.State()
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateType string, id int64, data any) error {
	ev, err := pkgkafka.NewEvent(eventType, strconv.FormatInt(id, 10), aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		ev.WithCorrelationID(cid)
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.sender.Publish(ctx, topic, ev)
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("event_type", eventType),
		slog.Int64("aggregate_id", id),
	)
	return nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Discard drops every event. It stands in for Producer when Kafka is disabled.
type Discard struct{}

func (Discard) PublishUserRegistered(context.Context, *domain.User) error { return nil }
func (Discard) PublishPropertyCreated(context.Context, *domain.Property) error { return nil }
