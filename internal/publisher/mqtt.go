package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/sync/errgroup"

	"github.com/jgoulah/energycalc/internal/config"
	"github.com/jgoulah/energycalc/internal/logger"
	"github.com/jgoulah/energycalc/pkg/models"
)

const publishTimeout = 10 * time.Second

// mqttClient is the part of mqtt.Client the publisher uses
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
	Disconnect(quiesce uint)
}

// Publisher pushes weekly summaries to MQTT and/or the Home Assistant HTTP API
type Publisher struct {
	client      mqttClient
	topicPrefix string
	haConfig    config.HAConfig
	httpClient  *http.Client
	log         *logger.Logger
}

// New creates a new publisher, connecting to the MQTT broker if enabled
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig, log *logger.Logger) (*Publisher, error) {
	if !mqttCfg.Enabled && !haCfg.Enabled {
		return nil, fmt.Errorf("neither mqtt nor home_assistant is enabled in config")
	}

	// Validate HA config if enabled
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

	var client mqtt.Client
	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		// Configure MQTT client options
		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID(mqttCfg.GetClientID())
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(false)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		// Create and connect client
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
		log.Debugw("connected to MQTT broker", "broker", mqttCfg.Broker)
	}

	p := &Publisher{
		topicPrefix: mqttCfg.GetTopicPrefix(),
		haConfig:    haCfg,
		httpClient:  &http.Client{Timeout: publishTimeout},
		log:         log,
	}
	if client != nil {
		p.client = client
	}
	return p, nil
}

// SummaryPayload is the JSON document published for a week
type SummaryPayload struct {
	Days          int     `json:"days"`
	Complete      bool    `json:"complete"`
	TotalEnergy   float64 `json:"total_energy_kwh"`
	AverageEnergy float64 `json:"average_energy_kwh"`
	HighestDay    string  `json:"highest_day,omitempty"`
	HighestEnergy float64 `json:"highest_energy_kwh,omitempty"`
	LowestDay     string  `json:"lowest_day,omitempty"`
	LowestEnergy  float64 `json:"lowest_energy_kwh,omitempty"`
	Timestamp     string  `json:"timestamp"`
}

// NewSummaryPayload flattens a summary, rounding energies to one decimal place
func NewSummaryPayload(s models.WeekSummary, now time.Time) SummaryPayload {
	p := SummaryPayload{
		Days:          s.Days,
		Complete:      s.Complete,
		TotalEnergy:   s.TotalEnergy.Round(1).InexactFloat64(),
		AverageEnergy: s.AverageEnergy.Round(1).InexactFloat64(),
		Timestamp:     now.UTC().Format(time.RFC3339),
	}
	if s.Highest != nil {
		p.HighestDay = string(s.Highest.Day)
		p.HighestEnergy = s.Highest.TotalEnergy.Round(1).InexactFloat64()
	}
	if s.Lowest != nil {
		p.LowestDay = string(s.Lowest.Day)
		p.LowestEnergy = s.Lowest.TotalEnergy.Round(1).InexactFloat64()
	}
	return p
}

// Publish sends the summary to every enabled destination concurrently
func (p *Publisher) Publish(ctx context.Context, s models.WeekSummary) error {
	payload := NewSummaryPayload(s, time.Now())

	g, ctx := errgroup.WithContext(ctx)
	if p.client != nil {
		g.Go(func() error {
			return p.publishMQTT(payload)
		})
	}
	if p.haConfig.Enabled {
		g.Go(func() error {
			return p.publishHA(ctx, payload)
		})
	}
	return g.Wait()
}

// Topic returns the MQTT topic summaries are published to
func (p *Publisher) Topic() string {
	return p.topicPrefix + "/weekly_summary"
}

func (p *Publisher) publishMQTT(payload SummaryPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	topic := p.Topic()
	token := p.client.Publish(topic, 1, true, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	p.log.Infow("published weekly summary", "destination", "mqtt", "topic", topic)
	return nil
}

// haState matches the body of Home Assistant's POST /api/states/<entity_id>
type haState struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

func (p *Publisher) publishHA(ctx context.Context, payload SummaryPayload) error {
	apiURL := fmt.Sprintf("%s/api/states/%s", strings.TrimSuffix(p.haConfig.URL, "/"), p.haConfig.EntityID)

	attrs := map[string]any{
		"unit_of_measurement": "kWh",
		"device_class":        "energy",
		"friendly_name":       "Weekly Energy Usage",
		"days_recorded":       payload.Days,
		"complete_week":       payload.Complete,
		"average_daily_kwh":   payload.AverageEnergy,
	}
	if payload.HighestDay != "" {
		attrs["highest_day"] = payload.HighestDay
		attrs["lowest_day"] = payload.LowestDay
	}

	body, err := json.Marshal(haState{
		State:      fmt.Sprintf("%.1f", payload.TotalEnergy),
		Attributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
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

	// HA answers 201 for a new entity and 200 for an update
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}
	p.log.Infow("published weekly summary", "destination", "home_assistant", "entity_id", p.haConfig.EntityID)
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
