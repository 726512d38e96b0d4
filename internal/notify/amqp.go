package notify

import (
	"context"
	"encoding/json"

	"tablebook/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPSender publishes notification messages to a durable RabbitMQ queue
// consumed by cmd/notify-worker.
type AMQPSender struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPSender(url, queue string) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPSender{conn: conn, ch: ch, queue: queue}, nil
}

func (s *AMQPSender) ReservationConfirmed(ctx context.Context, r *domain.Reservation, timeLabel string) error {
	return s.publish(ctx, messageFor(KindConfirmation, r, timeLabel))
}

func (s *AMQPSender) ReservationCancelled(ctx context.Context, r *domain.Reservation, timeLabel string) error {
	return s.publish(ctx, messageFor(KindCancellation, r, timeLabel))
}

func (s *AMQPSender) publish(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	return s.ch.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (s *AMQPSender) Close() error {
	_ = s.ch.Close()
	return s.conn.Close()
}
