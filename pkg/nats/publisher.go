package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"scent-advisor-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher handles sending advisor events to the NATS bus.
type Publisher struct {
	nc            *nats.Conn
	js            jetstream.JetStream
	subjectPrefix string
}

// NewPublisher connects and makes sure a stream captures "<subjectPrefix>.>".
func NewPublisher(url, subjectPrefix string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("scent-advisor"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream := StreamName(subjectPrefix)
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      stream,
		Subjects:  []string{subjectPrefix + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		// NATS may still be starting; publishing will retry through the connection.
		log.Printf("Warn: Failed to ensure stream '%s': %v", stream, err)
	}

	return &Publisher{nc: nc, js: js, subjectPrefix: subjectPrefix}, nil
}

// Publish sends an event to "<prefix>.<lowercased type>".
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(events.NewEnvelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	subject := Subject(p.subjectPrefix, event.EventType())
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}

	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

func Subject(prefix, eventType string) string {
	return fmt.Sprintf("%s.%s", prefix, strings.ToLower(eventType))
}

func StreamName(prefix string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(prefix))
}
