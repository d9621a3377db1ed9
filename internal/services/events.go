package services

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/metrics"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes article events to Kafka. Publishing is best
// effort: failures are logged and never returned.
type EventPublisher struct {
	kafkaWriter KafkaWriter
}

// NewEventPublisher creates a new EventPublisher. A nil writer disables publishing.
func NewEventPublisher(kafkaWriter KafkaWriter) *EventPublisher {
	return &EventPublisher{kafkaWriter: kafkaWriter}
}

// Publish sends an event of the given type about articleID caused by userID.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, articleID, userID int64) {
	event := models.ArticleEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ArticleID: articleID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}

	if p.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		metrics.ArticleEventsTotal.WithLabelValues(eventType, metrics.OutcomeSkipped).Inc()
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		metrics.ArticleEventsTotal.WithLabelValues(eventType, metrics.OutcomeFailed).Inc()
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(articleID, 10)),
		Value: data,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
		metrics.ArticleEventsTotal.WithLabelValues(eventType, metrics.OutcomeFailed).Inc()
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", eventType, "article_id", articleID)
		metrics.ArticleEventsTotal.WithLabelValues(eventType, metrics.OutcomePublished).Inc()
	}
}
