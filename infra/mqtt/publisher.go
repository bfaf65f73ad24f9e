// Package mqtt publishes batch results so downstream consumers, such as the
// notification service, can react without polling the store.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/coreflux/dispatchd/core/dispatch"
	"github.com/coreflux/dispatchd/infra/logger"
)

// Config defines the MQTT connection and topic settings.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Topic     string `json:"topic"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "dispatchd"
	}
	if c.Topic == "" {
		c.Topic = "dispatch/batch/results"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 5000
	}
}

// PahoPublisher publishes batch results as JSON on a single topic.
type PahoPublisher struct {
	client  paho.Client
	topic   string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// NewPahoPublisher connects to the broker and returns a publisher.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	client := paho.NewClient(opts)
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %s", timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{
		client:  client,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: timeout,
		log:     logger.New("mqtt-publisher"),
	}, nil
}

// PublishBatch serializes the batch result and publishes it.
func (p *PahoPublisher) PublishBatch(result dispatch.BatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal batch result: %w", err)
	}
	token := p.client.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish timeout after %s", p.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish batch result: %w", err)
	}
	p.log.Debugf("published batch %s (%d assignments)", result.BatchID, len(result.Assignments))
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.client.Disconnect(250)
}
