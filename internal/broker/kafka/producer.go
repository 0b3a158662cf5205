package kafkabroker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Egor213/RBACPanel/internal/domain"
	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes alerts as JSON messages keyed by alert type.
type Producer struct {
	writer messageWriter
	topic  string
}

func NewProducer(cfg ProducerConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
	}
	return &Producer{
		writer: w,
		topic:  cfg.Topic,
	}
}

func alertMessages(alerts []domain.Alert) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(alerts))
	for _, a := range alerts {
		value, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(a.Type),
			Value: value,
			Time:  a.Timestamp,
			Headers: []kafka.Header{
				{Key: "level", Value: []byte(a.Level)},
				{Key: "count", Value: []byte(strconv.Itoa(a.Count))},
			},
		})
	}
	return msgs, nil
}

func (p *Producer) PublishAlerts(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs, err := alertMessages(alerts)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.WithFields(log.Fields{"topic": p.topic, "error": err}).Error("Failed to publish alerts")
		return errorsUtils.WrapPathErr(err)
	}
	log.WithFields(log.Fields{"topic": p.topic, "count": len(msgs)}).Debug("Alerts published")
	return nil
}

func (p *Producer) Close() error {
	log.Info("Closing Kafka producer...")
	return p.writer.Close()
}
