package notify

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"agriteranga-courier/internal/logx"
)

// KafkaNotifier publishes notifications to a Kafka topic so other
// AgriTeranga services (and the admin notification panel) can consume them.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
	wg       sync.WaitGroup
}

// NewKafkaNotifier creates a Kafka-backed notifier.
// Returns (nil, nil) when brokers or topic are not configured.
func NewKafkaNotifier(brokers []string, topic string, logger logx.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{producer: producer, topic: topic, logger: logger}, nil
}

// Notify publishes the notification as JSON. The send happens off the
// caller's goroutine so a slow broker never stalls a store action, and
// publish failures are logged, never surfaced: notifications are
// best-effort.
func (k *KafkaNotifier) Notify(n Notification) {
	if k == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		k.logger.Error("notification marshal failed", logx.Any("err", err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(n.ID),
		Value: sarama.ByteEncoder(payload),
	}

	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		if _, _, err := k.producer.SendMessage(msg); err != nil {
			k.logger.Error("notification publish failed",
				logx.String("topic", k.topic),
				logx.Any("err", err),
			)
		}
	}()
}

// Close waits for in-flight sends and shuts down the underlying producer.
func (k *KafkaNotifier) Close() error {
	if k == nil {
		return nil
	}
	k.wg.Wait()
	return k.producer.Close()
}
