package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	cfg := BaseConfig{Server: Server{Port: 8080}}
	assert.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestServerAddress(t *testing.T) {
	assert.Equal(t, ":8080", Server{Port: 8080}.Address())
}

func TestPersistencePingTimeout(t *testing.T) {
	p := Persistence{PingTimeoutExpression: "5s"}
	assert.Equal(t, 5*time.Second, p.GetPingTimeout())
}
