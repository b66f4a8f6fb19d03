package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrMalformedEvent = errors.New("evento malformado")

// Notifier define o contrato dos avisos ao administrador (email hoje).
type Notifier interface {
	SendNewLeadAlert(event LeadEvent) error
	SendPaymentAlert(event LeadEvent) error
}

type deliverySource interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  deliverySource
	Notifier Notifier
}

func NewWorker(ch deliverySource, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consome até o ctx acabar ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [WORKER] Encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Println("⚠️ [WORKER] Canal de entregas fechado")
				return nil
			}
			w.handleDelivery(d)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	if err := w.Process(d.Body); err != nil {
		log.Printf("❌ [WORKER] %s", err)
		// Sem requeue: vai para a DLQ e não trava a fila.
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

// Process roteia um evento pelo tipo.
func (w *Worker) Process(body []byte) error {
	var event LeadEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.Type == "" || event.LeadID == "" {
		return fmt.Errorf("%w: type e lead_id são obrigatórios", ErrMalformedEvent)
	}

	switch event.Type {
	case EventLeadCreated:
		log.Printf("📥 [WORKER] Novo lead %s (%s)", event.LeadID, event.Service)
		return w.notify(func() error { return w.Notifier.SendNewLeadAlert(event) })

	case EventPaymentRecorded:
		log.Printf("💰 [WORKER] Pagamento registrado para %s via %s", event.LeadID, event.PaymentMethod)
		return w.notify(func() error { return w.Notifier.SendPaymentAlert(event) })

	default:
		// Sem aviso para os demais; só ACK.
		log.Printf("ℹ️ [WORKER] Evento %s do lead %s", event.Type, event.LeadID)
		return nil
	}
}

func (w *Worker) notify(send func() error) error {
	if w.Notifier == nil {
		return nil
	}
	if err := send(); err != nil {
		return fmt.Errorf("erro ao enviar aviso: %w", err)
	}
	return nil
}
