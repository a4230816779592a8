package service

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/coworking-reservation/internal/queue"
)

// NopPublisher drops every event.  It is the default when no broker is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.ReservationEvent) error { return nil }

// AMQPPublisher sends reservation events to ReservationsQueue.  The
// connection is dialled on first use and reused; a failed publish drops
// it so the next event redials.
type AMQPPublisher struct {
    URL string

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

// NewAMQPPublisher returns a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
    return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
    if p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.reset()
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        return nil, fmt.Errorf("dial broker: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("open channel: %w", err)
    }
    // durable, not auto-deleted, not exclusive
    if _, err := ch.QueueDeclare(q.ReservationsQueue, true, false, false, false, nil); err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("declare %s: %w", q.ReservationsQueue, err)
    }
    p.conn, p.ch = conn, ch
    return ch, nil
}

func (p *AMQPPublisher) reset() {
    if p.conn != nil {
        _ = p.conn.Close()
    }
    p.conn, p.ch = nil, nil
}

// Publish sends ev as a persistent JSON message on the default exchange.
// Errors are returned for logging; they never undo the committed change.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ReservationEvent) error {
    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    ch, err := p.channel()
    if err != nil {
        return err
    }
    err = ch.PublishWithContext(ctx, "", q.ReservationsQueue, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         ev.Type,
        MessageId:    fmt.Sprintf("%s-%d", ev.Type, ev.Folio),
        Body:         body,
    })
    if err != nil {
        p.reset()
        return fmt.Errorf("publish %s: %w", ev.Type, err)
    }
    return nil
}

// Close releases the broker connection, if any.
func (p *AMQPPublisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.reset()
    return nil
}
