package producers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/custgen/internal/models"
	"github.com/rs/zerolog/log"
)

const runIDHeader = "run_id"

// SaramaProducer publishes one message per customer. The key is the customer id,
// the value is the customers.txt line without its newline.
type SaramaProducer struct {
	producer sarama.SyncProducer
	topic    string
	runID    string
}

func NewSaramaProducer(config *models.Config, runID string) (*SaramaProducer, error) {
	timeout := config.KafkaTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	// one partition keeps the batch in id order for consumers
	saramaConfig.Producer.Partitioner = sarama.NewManualPartitioner
	saramaConfig.Net.DialTimeout = timeout
	saramaConfig.Net.ReadTimeout = timeout
	saramaConfig.Net.WriteTimeout = timeout

	producer, err := sarama.NewSyncProducer(config.KafkaBrokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Debug().Strs("brokers", config.KafkaBrokers).Msg("Sarama producer created")
	return NewSaramaProducerWithSync(producer, config.KafkaTopic, runID), nil
}

func NewSaramaProducerWithSync(producer sarama.SyncProducer, topic, runID string) *SaramaProducer {
	return &SaramaProducer{producer: producer, topic: topic, runID: runID}
}

func (s *SaramaProducer) WriteCustomer(customer models.Customer) error {
	if s.producer == nil {
		return fmt.Errorf("Sarama producer is not initialized")
	}

	_, _, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.Itoa(customer.ID)),
		Value: sarama.StringEncoder(customer.String()),
		Headers: []sarama.RecordHeader{
			{Key: []byte(runIDHeader), Value: []byte(s.runID)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send customer %d to topic %s: %w", customer.ID, s.topic, err)
	}

	return nil
}

func (s *SaramaProducer) Close() error {
	if s.producer != nil {
		err := s.producer.Close()
		s.producer = nil
		return err
	}
	return nil
}
