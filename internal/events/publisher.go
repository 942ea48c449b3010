// Package events publishes order lifecycle notifications for downstream
// consumers (fulfilment, email). Publishing is fire-and-forget: a failed
// publish is logged, never surfaced to the customer.
package events

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status_changed"
)

// Publisher emits domain events.
type Publisher interface {
	Publish(topic string, message map[string]interface{})
	Close() error
}

// KafkaPublisher sends events through an async Kafka producer.
type KafkaPublisher struct {
	producer sarama.AsyncProducer
}

func NewKafkaPublisher(brokers string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 500 * time.Millisecond
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewAsyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, err
	}

	go func() {
		for err := range producer.Errors() {
			log.Printf("failed to publish event: %v", err)
		}
	}()

	return &KafkaPublisher{producer: producer}, nil
}

func (p *KafkaPublisher) Publish(topic string, message map[string]interface{}) {
	bytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("failed to encode event for %s: %v", topic, err)
		return
	}
	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(bytes),
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, map[string]interface{}) {}
func (NoopPublisher) Close() error                           { return nil }
