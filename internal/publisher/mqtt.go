package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/jgoulah/btcenergy/internal/config"
	"github.com/jgoulah/btcenergy/pkg/models"
)

// Publisher sends daily energy readings to MQTT and/or Home Assistant
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
	httpClient  *http.Client
}

// Option configures a Publisher
type Option func(*Publisher)

// WithMQTTClient uses an already constructed MQTT client instead of dialing the broker
func WithMQTTClient(client mqtt.Client) Option {
	return func(p *Publisher) {
		p.client = client
	}
}

// New creates a new publisher (supports both MQTT and HA HTTP API)
func New(cfg *config.Config, opts ...Option) (*Publisher, error) {
	mqttCfg, haCfg := cfg.MQTT, cfg.HomeAssistant
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	p := &Publisher{
		topicPrefix: cfg.GetTopicPrefix(),
		haConfig:    haCfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}

	if mqttCfg.Enabled && p.client == nil {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		clientOpts := mqtt.NewClientOptions()
		clientOpts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		// Brokers drop the older session when two clients share an ID
		clientOpts.SetClientID("btcenergy-" + uuid.NewString()[:8])
		clientOpts.SetAutoReconnect(true)
		clientOpts.SetConnectRetry(false)
		clientOpts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			clientOpts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			clientOpts.SetPassword(mqttCfg.Password)
		}

		client := mqtt.NewClient(clientOpts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
		p.client = client
	}

	if p.client == nil && !haCfg.Enabled {
		return nil, fmt.Errorf("no publish target enabled (configure mqtt or home_assistant)")
	}

	return p, nil
}

// HAPayload matches the Home Assistant backfill service call data
type HAPayload struct {
	EntityID    string `json:"entity_id"`
	State       string `json:"state"`
	LastChanged string `json:"last_changed"`
	LastUpdated string `json:"last_updated"`
}

// Topic returns the MQTT topic for a reading
func (p *Publisher) Topic(reading models.DailyEnergy) string {
	return fmt.Sprintf("%s/daily/%s", p.topicPrefix, reading.Date)
}

// Publish sends a daily reading to every enabled target
func (p *Publisher) Publish(reading models.DailyEnergy) error {
	if p.client != nil {
		if err := p.publishMQTT(reading); err != nil {
			return err
		}
	}
	if p.haConfig.Enabled {
		if err := p.publishHA(reading); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publishMQTT(reading models.DailyEnergy) error {
	body, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	token := p.client.Publish(p.Topic(reading), 1, true, body)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("publishing to %s: timed out", p.Topic(reading))
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", p.Topic(reading), err)
	}
	return nil
}

func (p *Publisher) publishHA(reading models.DailyEnergy) error {
	apiURL := fmt.Sprintf("%s/api/appdaemon/backfill_state", p.haConfig.URL)

	day, err := time.Parse("2006-01-02", reading.Date)
	if err != nil {
		return fmt.Errorf("parsing reading date: %w", err)
	}
	timestamp := day.UTC().Format(time.RFC3339)

	payload := HAPayload{
		EntityID:    p.haConfig.EntityID,
		State:       fmt.Sprintf("%.2f", reading.TotalEnergyKWh),
		LastChanged: timestamp,
		LastUpdated: timestamp,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
