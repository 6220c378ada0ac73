// Package kafka publica los envíos del punto de venta en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/rs/zerolog"
)

var _ ports.ShipmentCreator = (*ShipmentPublisher)(nil)

// EventTypeShipmentRequested tipo de evento publicado.
const EventTypeShipmentRequested = "shipment.requested"

// ShipmentRequestedEvent mensaje publicado por cada venta a domicilio.
type ShipmentRequestedEvent struct {
	EventID             string    `json:"event_id"`
	EventType           string    `json:"event_type"`
	CustomerName        string    `json:"customer_name"`
	Destination         string    `json:"destination"`
	EstimatedDelivery   string    `json:"estimated_delivery"`
	SourceTransactionID string    `json:"source_transaction_id"`
	Timestamp           time.Time `json:"timestamp"`
}

// ShipmentPublisher envuelve un productor síncrono de sarama.
type ShipmentPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewShipmentPublisher crea el productor contra los brokers dados.
func NewShipmentPublisher(brokers []string, topic string, log zerolog.Logger) (*ShipmentPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("crear productor Kafka: %w", err)
	}
	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("publicador de envíos Kafka inicializado")
	return NewShipmentPublisherWithProducer(producer, topic, log), nil
}

// NewShipmentPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewShipmentPublisherWithProducer(producer sarama.SyncProducer, topic string, log zerolog.Logger) *ShipmentPublisher {
	return &ShipmentPublisher{producer: producer, topic: topic, log: log}
}

// CreateShipment publica el envío con la transacción de origen como clave de partición.
func (p *ShipmentPublisher) CreateShipment(ctx context.Context, req ports.ShipmentRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	event := ShipmentRequestedEvent{
		EventID:             uuid.New().String(),
		EventType:           EventTypeShipmentRequested,
		CustomerName:        req.CustomerName,
		Destination:         req.Destination,
		EstimatedDelivery:   req.EstimatedDelivery,
		SourceTransactionID: req.SourceTransactionID,
		Timestamp:           time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(req.SourceTransactionID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeShipmentRequested)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).
			Str("topic", p.topic).
			Str("transaction_id", req.SourceTransactionID).
			Msg("no se pudo publicar el envío")
		return fmt.Errorf("publicar envío en Kafka: %w", err)
	}
	p.log.Info().
		Str("event_id", event.EventID).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("envío publicado")
	return nil
}

// Close cierra el productor.
func (p *ShipmentPublisher) Close() error {
	return p.producer.Close()
}
