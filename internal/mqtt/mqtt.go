// Package mqtt publishes confirmed commands to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ayusman/mudra/internal/gesture"
)

// Config holds broker connection settings.
type Config struct {
	Broker   string
	ClientID string
	Topic    string
}

// Publisher forwards confirmed commands to an MQTT broker so external
// automations can react to them alongside the websocket clients.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// NewPublisher connects to the broker and returns a ready Publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.Broker, token.Error())
	}

	return &Publisher{client: client, topic: cfg.Topic}, nil
}

// Publish sends a confirmed command to the configured topic.
func (p *Publisher) Publish(cmd gesture.Command) error {
	payload, err := commandPayload(cmd)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// commandPayload builds the JSON message for a command. The shape matches
// the websocket broadcast so consumers can share a decoder.
func commandPayload(cmd gesture.Command) ([]byte, error) {
	return json.Marshal(map[string]string{"command": string(cmd)})
}
