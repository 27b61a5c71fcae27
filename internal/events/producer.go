package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"brandoraBack/internal/models"
)

// Producer publishes scrape job lifecycle events to Kafka. Publishing is
// asynchronous; a full inbox drops the event rather than blocking the caller.
type Producer struct {
	w        *kafka.Writer
	inbox    chan kafka.Message
	errorLog *log.Logger
}

func NewProducer(brokers []string, topic string, buf int, errorLog *log.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:    make(chan kafka.Message, buf),
		errorLog: errorLog,
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					_ = p.w.WriteMessages(context.Background(), m)
				}
				_ = p.w.Close()
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				if err := p.w.WriteMessages(context.Background(), m); err != nil && p.errorLog != nil {
					p.errorLog.Printf("kafka publish: %v", err)
				}
			}
		}
	}()
}

// PublishJobEvent enqueues a job status change, keyed by job id so one job's
// events stay ordered within a partition.
func (p *Producer) PublishJobEvent(ev models.JobEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		if p.errorLog != nil {
			p.errorLog.Printf("kafka marshal: %v", err)
		}
		return
	}
	msg := kafka.Message{Key: []byte(ev.JobID), Value: raw, Time: time.Now()}
	select {
	case p.inbox <- msg:
	default:
		if p.errorLog != nil {
			p.errorLog.Printf("kafka inbox full, dropping event for job %s", ev.JobID)
		}
	}
}
