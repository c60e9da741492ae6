package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-console/internal/models"
)

// fakeToken is an mqtt.Token whose outcome is fixed up front.
type fakeToken struct {
	done chan struct{}
	err  error
}

func newToken(finished bool, err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if finished {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(mqtt.Token)
}

func TestMQTTPublisher_Publish(t *testing.T) {
	client := new(mockClient)
	alert := models.Alert{ID: "auto-license-2", Title: "Licencia vencida", CompanyID: "1"}

	client.On("Publish", "fleet/alerts/1", byte(1), false, mock.MatchedBy(func(p interface{}) bool {
		var got models.Alert
		return json.Unmarshal(p.([]byte), &got) == nil && got.ID == alert.ID
	})).Return(newToken(true, nil))

	p := newPublisher(client, "fleet/alerts")
	require.NoError(t, p.Publish(context.Background(), alert))
	client.AssertExpectations(t)
}

func TestMQTTPublisher_PublishError(t *testing.T) {
	client := new(mockClient)
	client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(newToken(true, errors.New("not connected")))

	p := newPublisher(client, "fleet/alerts")
	err := p.Publish(context.Background(), models.Alert{CompanyID: "1"})
	assert.ErrorContains(t, err, "not connected")
}

func TestMQTTPublisher_Timeout(t *testing.T) {
	client := new(mockClient)
	client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(newToken(false, nil))

	p := newPublisher(client, "fleet/alerts")
	p.timeout = 10 * time.Millisecond
	err := p.Publish(context.Background(), models.Alert{CompanyID: "1"})
	assert.ErrorIs(t, err, ErrPublishTimeout)
}

func TestMQTTPublisher_ContextCancelled(t *testing.T) {
	client := new(mockClient)
	client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(newToken(false, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newPublisher(client, "fleet/alerts")
	err := p.Publish(ctx, models.Alert{CompanyID: "1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNop(t *testing.T) {
	var n Nop
	assert.NoError(t, n.Publish(context.Background(), models.Alert{}))
	n.Close()
}
