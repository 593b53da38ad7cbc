package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/event"
)

func TestReadinessFollowsServerMonitor(t *testing.T) {
	t.Cleanup(func() { ready.Store(false) })
	m := serverMonitor()

	assert.False(t, Ready())

	m.ServerHeartbeatSucceeded(&event.ServerHeartbeatSucceededEvent{})
	assert.True(t, Ready())

	m.ServerHeartbeatFailed(&event.ServerHeartbeatFailedEvent{Failure: errors.New("timeout")})
	assert.False(t, Ready())

	m.ServerHeartbeatSucceeded(&event.ServerHeartbeatSucceededEvent{})
	m.ServerClosed(&event.ServerClosedEvent{})
	assert.False(t, Ready())
}
