package survey

import (
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is where deployment points land unless the plan config says
// otherwise. Field tablets subscribe to it for the latest point set.
const DefaultTopic = "arufield/points"

// Publisher pushes the final point collection to an MQTT broker as a single
// retained GeoJSON message, so a tablet connecting later still receives the
// current plan.
type Publisher struct {
	client mqtt.Client
	topic  string
	qos    byte
	retain bool
}

// NewPublisher wraps a connected MQTT client. An empty topic falls back to
// DefaultTopic.
func NewPublisher(client mqtt.Client, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		client: client,
		topic:  topic,
		qos:    1, // the plan must arrive; duplicates are harmless (retained)
		retain: true,
	}
}

// ConnectBroker dials the broker named in the config and waits for the
// connection to come up.
func ConnectBroker(config MQTTConfig) (mqtt.Client, error) {
	if config.Broker == "" {
		return nil, fmt.Errorf("mqtt.broker is not configured")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)

	clientID := config.ClientID
	if clientID == "" {
		clientID = "arufield"
	}
	opts.SetClientID(clientID)

	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return nil, fmt.Errorf("connecting to %s: timeout", config.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", config.Broker, token.Error())
	}
	return client, nil
}

// PublishPoints publishes the point collection as one retained message.
func (p *Publisher) PublishPoints(points []DeployPoint) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	payload, err := ExportGeoJSON(points)
	if err != nil {
		return fmt.Errorf("encoding points: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, p.retain, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", p.topic, token.Error())
	}

	log.Printf("Published %d deployment points to %s", len(points), p.topic)
	return nil
}
