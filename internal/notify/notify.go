// Package notify publishes newly derived alerts outside the console.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Nop discards every alert. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(ctx context.Context, alert models.Alert) error { return nil }

func (Nop) Close() {}

// publisher is the part of mqtt.Client the alert feed needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher sends alerts as JSON to <topic>/<company id>.
type MQTTPublisher struct {
	client  publisher
	topic   string
	timeout time.Duration
	close   func()
}

// NewMQTTPublisher connects to broker and returns a publisher for topic.
func NewMQTTPublisher(broker, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("Connected to MQTT broker")
	p := newPublisher(client, topic)
	p.close = func() { client.Disconnect(250) }
	return p, nil
}

func newPublisher(client publisher, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, timeout: 5 * time.Second, close: func() {}}
}

// Publish sends one alert with QoS 1.
func (p *MQTTPublisher) Publish(ctx context.Context, alert models.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}
	topic := p.topic + "/" + alert.CompanyID

	token := p.client.Publish(topic, 1, false, payload)
	select {
	case <-token.Done():
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.close()
}
