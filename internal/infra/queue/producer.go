package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/machinecare-leads/internal/entity"
)

const (
	EventLeadCreated       = "lead.created"
	EventLeadStatusChanged = "lead.status_changed"
	EventPaymentRecorded   = "lead.payment_recorded"
	EventLeadDeleted       = "lead.deleted"
)

type LeadEvent struct {
	Type          string    `json:"type"`
	LeadID        string    `json:"lead_id"`
	Name          string    `json:"name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Service       string    `json:"service,omitempty"`
	Status        string    `json:"status,omitempty"`
	Amount        *float64  `json:"amount,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewLeadEvent tira a foto do lead no momento do evento.
func NewLeadEvent(eventType string, lead *entity.Lead, now time.Time) LeadEvent {
	event := LeadEvent{
		Type:       eventType,
		LeadID:     lead.ID,
		Name:       lead.Name,
		Phone:      lead.Phone,
		Service:    lead.Service,
		Status:     string(lead.Status),
		Amount:     lead.Amount,
		OccurredAt: now,
	}
	if eventType == EventPaymentRecorded {
		event.Amount = lead.PaymentAmount
		event.PaymentMethod = string(lead.PaymentMethod)
	}
	return event
}

// channelPublisher é o pedaço do *amqp.Channel que o producer usa.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch channelPublisher
}

func NewProducer(ch channelPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
