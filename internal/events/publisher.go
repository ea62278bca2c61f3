package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"butler-alert-service/internal/logging"
	"butler-alert-service/internal/models"
	"butler-alert-service/internal/utils"
)

const (
	writeTimeout    = 10 * time.Second
	publishAttempts = 3
	publishDelay    = 2 * time.Second
)

// AlertCreated is the event emitted for every alert the engine commits.
type AlertCreated struct {
	AlertID           string    `json:"alert_id"`
	HouseholdID       string    `json:"household_id"`
	Type              string    `json:"type"`
	Category          string    `json:"category"`
	Severity          string    `json:"severity"`
	Priority          int       `json:"priority"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   string    `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Publisher emits alert.created events to Kafka, keyed by household id so one
// household's alerts land on one partition.
type Publisher struct {
	writer *kafka.Writer
	logger *logging.Logger
}

// NewPublisher configures a synchronous Kafka writer for the given brokers
// (comma separated) and topic.
func NewPublisher(brokers, topic string, logger *logging.Logger) (*Publisher, error) {
	if brokers == "" {
		return nil, fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerList...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	logger.Infof("Kafka alert publisher configured (brokers=%v, topic=%s)", brokerList, topic)
	return &Publisher{writer: writer, logger: logger}, nil
}

// AlertsCreated publishes one event per committed alert. Publish failures are
// retried a few times and then logged; event delivery never fails the
// generation cycle.
func (p *Publisher) AlertsCreated(alerts []models.Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	msgs := make([]kafka.Message, 0, len(alerts))
	for _, a := range alerts {
		payload, err := json.Marshal(AlertCreated{
			AlertID:           a.ID.String(),
			HouseholdID:       a.HouseholdID.String(),
			Type:              string(a.Type),
			Category:          string(a.Category),
			Severity:          string(a.Severity),
			Priority:          int(a.Priority),
			Title:             a.Title,
			Message:           a.Message,
			RelatedEntityType: a.RelatedEntityType,
			RelatedEntityID:   a.RelatedEntityID.String(),
			CreatedAt:         a.CreatedAt,
		})
		if err != nil {
			p.logger.Errorf("Failed to marshal alert event %s: %v", a.ID, err)
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(a.HouseholdID.String()),
			Value: payload,
			Time:  a.CreatedAt,
		})
	}
	if len(msgs) == 0 {
		return
	}

	err := utils.Retry(p.logger, publishAttempts, publishDelay, func() error {
		return p.writer.WriteMessages(ctx, msgs...)
	})
	if err != nil {
		p.logger.Errorf("Failed to publish %d alert event(s): %v", len(msgs), err)
	}
}

// Close releases the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
