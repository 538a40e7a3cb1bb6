package messaging

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writers map[string]*kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		writers: make(map[string]*kafka.Writer),
	}
}

func (kp *KafkaProducer) GetWriter(topic string, brokers []string) *kafka.Writer {
	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	kp.writers[topic] = writer
	return writer
}

func (kp *KafkaProducer) SendMessage(topic string, brokers []string, key string, value interface{}) error {
	writer := kp.GetWriter(topic, brokers)

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	}

	return writer.WriteMessages(context.Background(), message)
}

func (kp *KafkaProducer) Close() {
	for _, writer := range kp.writers {
		writer.Close()
	}
}

// Event types for async processing
type OrderPlacedEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	DeviceID     string      `json:"device_id"`
	UserID       string      `json:"user_id"`
	RestaurantID string      `json:"restaurant_id"`
	TotalAmount  float64     `json:"total_amount"`
	TotalItems   int         `json:"total_items"`
	Items        interface{} `json:"items"`
}

type CartClearedEvent struct {
	Type     string `json:"type"`
	DeviceID string `json:"device_id"`
	Reason   string `json:"reason"` // shopper_cleared, order_placed
}
