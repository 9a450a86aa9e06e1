package publisher

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/btcenergy/internal/config"
	"github.com/jgoulah/btcenergy/pkg/models"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient records publishes; unused mqtt.Client methods panic via the nil embed
type fakeClient struct {
	mqtt.Client
	messages     []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic, qos, retained, payload.([]byte)})
	return &fakeToken{}
}

func (c *fakeClient) IsConnected() bool { return !c.disconnected }

func (c *fakeClient) Disconnect(quiesce uint) { c.disconnected = true }

func haConfig(url string) *config.Config {
	return &config.Config{HomeAssistant: config.HAConfig{Enabled: true, URL: url, Token: "tok", EntityID: "sensor.btc"}}
}

func TestNewRequiresATarget(t *testing.T) {
	_, err := New(&config.Config{})
	assert.Error(t, err)
}

func TestNewValidatesHomeAssistant(t *testing.T) {
	_, err := New(&config.Config{HomeAssistant: config.HAConfig{Enabled: true, URL: "http://x"}})
	assert.ErrorContains(t, err, "token")
}

func TestNewValidatesBroker(t *testing.T) {
	_, err := New(&config.Config{MQTT: config.MQTTConfig{Enabled: true}})
	assert.ErrorContains(t, err, "broker")
}

func TestPublishMQTT(t *testing.T) {
	client := &fakeClient{}
	pub, err := New(&config.Config{MQTT: config.MQTTConfig{TopicPrefix: "energy"}}, WithMQTTClient(client))
	require.NoError(t, err)

	reading := models.DailyEnergy{Date: "2024-03-02", TotalEnergyKWh: 1234.5}
	require.NoError(t, pub.Publish(reading))

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "energy/daily/2024-03-02", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)
	assert.JSONEq(t, `{"date":"2024-03-02","total_energy_kwh":1234.5}`, string(msg.payload))

	pub.Close()
	assert.True(t, client.disconnected)
}

func TestTopicPrefixDefaultsFromConfig(t *testing.T) {
	pub, err := New(&config.Config{}, WithMQTTClient(&fakeClient{}))
	require.NoError(t, err)

	assert.Equal(t, "btcenergy/daily/2024-03-02", pub.Topic(models.DailyEnergy{Date: "2024-03-02"}))
}

func TestPublishHomeAssistant(t *testing.T) {
	var got HAPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appdaemon/backfill_state", r.URL.Path)
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
	}))
	defer srv.Close()

	pub, err := New(haConfig(srv.URL))
	require.NoError(t, err)

	require.NoError(t, pub.Publish(models.DailyEnergy{Date: "2024-03-02", TotalEnergyKWh: 10.126}))
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "sensor.btc", got.EntityID)
	assert.Equal(t, "10.13", got.State)
	assert.Equal(t, "2024-03-02T00:00:00Z", got.LastChanged)
}

func TestPublishHomeAssistantError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	pub, err := New(haConfig(srv.URL))
	require.NoError(t, err)

	err = pub.Publish(models.DailyEnergy{Date: "2024-03-02"})
	assert.ErrorContains(t, err, "status 401")
}
