package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"github.com/mhasan/lifeos/backend/notifications/email"
	storage "github.com/mhasan/lifeos/backend/storage/cache"
)

// globalCount is used by the round robin that spreads alerts over the
// available producers.
var globalCount int

// AlertProducerFactory creates new AlertProducer instances.
type AlertProducerFactory struct{}

// AlertConsumerFactory creates new AlertConsumer instances. The Cache is
// consulted so a redelivered alert is never sent twice.
type AlertConsumerFactory struct {
	Cache storage.CacheInterface
}

// AlertProducer publishes reminder alerts onto the AMQP queue.
type AlertProducer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   *amqp.Queue
}

// AlertConsumer drains reminder alerts off the AMQP queue and delivers
// them through the email side channel.
type AlertConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   *amqp.Queue
	cache   storage.CacheInterface
}

// AlertMessage is the wire form of one due reminder heading out-of-app.
type AlertMessage struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Time     string `json:"time"`
	Priority string `json:"priority"`
	To       string `json:"to"`
}

// CreateProducer builds an AlertProducer bound to the given connection,
// channel and queue.
func (f *AlertProducerFactory) CreateProducer(conn *amqp.Connection, ch *amqp.Channel, queue *amqp.Queue) (Producer, error) {
	return &AlertProducer{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

// CreateConsumer builds an AlertConsumer bound to the given connection,
// channel and queue, with the factory's cache for dedup.
func (f *AlertConsumerFactory) CreateConsumer(conn *amqp.Connection, ch *amqp.Channel, queue *amqp.Queue) (Consumer, error) {
	return &AlertConsumer{
		conn:    conn,
		channel: ch,
		queue:   queue,
		cache:   f.Cache,
	}, nil
}

// Publish sends one message body to the queue.
func (ap *AlertProducer) Publish(body []byte) error {
	err := ap.channel.Publish(
		"",            // exchange
		ap.queue.Name, // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	return nil
}

// Consume sets up a consumer on the queue and launches a worker that reads
// alerts, skips ones already delivered (per the cache), and emails the
// rest. Transient failures are nacked back onto the queue.
func (ac *AlertConsumer) Consume(ctx context.Context) (<-chan amqp.Delivery, error) {
	msgs, err := ac.channel.Consume(
		ac.queue.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case d, ok := <-msgs:
				if !ok {
					return
				}

				alert := &AlertMessage{}
				if err := json.Unmarshal(d.Body, alert); err != nil {
					log.Printf("failed to unmarshal alert message: %v", err)
					d.Nack(false, true)
					continue
				}

				delivered, err := ac.cache.Get(ctx, "alert_"+alert.ID)
				if err != nil {
					if err.Error() != "key does not exist" {
						log.Printf("error checking cache: %v", err)
						d.Nack(false, true)
						continue
					}
				}

				if delivered != nil {
					d.Ack(false)
					continue
				}

				if err := email.SendAlert(alert.To, alert.Text, alert.Time); err != nil {
					log.Printf("failed to deliver alert: %v", err)
					d.Nack(false, true)
				} else {
					d.Ack(false)
					if err := ac.cache.Set(ctx, "alert_"+alert.ID, true); err != nil {
						log.Printf("failed to set key in cache: %v", err)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	return msgs, nil
}

// BuildAlertQueue initializes the alert queue with the requested number of
// producers and consumers, sharing the given dedup cache.
func BuildAlertQueue(amqpURL string, numProducers int, numConsumers int, alertCache storage.CacheInterface) *Queue {
	prodFactories := make([]ProducerFactory, numProducers)
	for i := 0; i < numProducers; i++ {
		prodFactories[i] = &AlertProducerFactory{}
	}

	consFactories := make([]ConsumerFactory, numConsumers)
	for i := 0; i < numConsumers; i++ {
		consFactories[i] = &AlertConsumerFactory{Cache: alertCache}
	}

	return InitQueue(amqpURL, "alertQueue", prodFactories, consFactories)
}

// InitAlertCache connects the dedup cache used by alert consumers.
func InitAlertCache(url string) storage.CacheInterface {
	c, err := storage.NewCache(url)
	if err != nil {
		log.Fatalf("Error connecting to cache: %v", err)
	}
	return c
}

// ProcessAlert publishes one alert, assigning a producer round robin.
func ProcessAlert(alert *AlertMessage, q *Queue) error {
	if q == nil || len(q.Producers) == 0 {
		return errors.New("no producers available")
	}

	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	producer := q.Producers[globalCount%len(q.Producers)]
	globalCount++

	return producer.Publish(body)
}
