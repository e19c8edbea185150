package events

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/biosecret/go-tasks/utils"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher mirrors task events to an MQTT broker so external consumers
// (dashboards, automations) can follow task activity. A nil Publisher is
// valid and publishes nothing.
type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the broker at rawURL. An empty URL disables
// publishing and returns (nil, nil).
func NewPublisher(rawURL string) (*Publisher, error) {
	if rawURL == "" {
		return nil, nil
	}

	uri, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT_URL: %w", err)
	}

	suffix, err := utils.GenerateRandomID()
	if err != nil {
		return nil, err
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", uri.Host))
	opts.SetClientID("go-tasks-" + suffix[:8])

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(3 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", uri.Host)
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return &Publisher{client: client}, nil
}

// Publish sends ev to the owner's topic. Fire and forget: a broker hiccup is
// logged and never fails the request that produced the event.
func (p *Publisher) Publish(ev Event) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("error encoding task event: %v", err)
		return
	}
	topic := fmt.Sprintf("tasks/events/%d", ev.Task.UserID)
	p.client.Publish(topic, 0, false, payload)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}
