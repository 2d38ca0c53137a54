package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// KafkaOrderPublisher は注文イベントをKafkaに送る（キーはorder_id）。
type KafkaOrderPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *log.Entry
}

// NewKafkaOrderPublisher はbrokersに接続したSyncProducerを作る
func NewKafkaOrderPublisher(brokers []string, topic string, logger *log.Entry) (*KafkaOrderPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newKafkaOrderPublisher(producer, topic, logger), nil
}

func newKafkaOrderPublisher(producer sarama.SyncProducer, topic string, logger *log.Entry) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{
		producer: producer,
		topic:    topic,
		log:      logger.WithField("component", "kafka-order-publisher"),
	}
}

func (p *KafkaOrderPublisher) Publish(ctx context.Context, ev model.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := strconv.FormatInt(ev.OrderID, 10)
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(data),
		Timestamp: ev.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(ev.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.log.WithFields(log.Fields{
		"topic":     p.topic,
		"key":       key,
		"type":      ev.Type,
		"partition": partition,
		"offset":    offset,
	}).Debug("order event sent")
	return nil
}

func (p *KafkaOrderPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
