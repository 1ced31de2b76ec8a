package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"krishimitra/pkg/logger"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Token: "token"}.withDefaults()

	assert.Equal(t, 60, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.Equal(t, 20, cfg.RateLimitRate)
}

func TestConfig_ExplicitValuesKept(t *testing.T) {
	cfg := Config{
		Token:          "token",
		Timeout:        10,
		HTTPTimeout:    5 * time.Second,
		RateLimitBurst: 5,
		RateLimitRate:  2,
	}.withDefaults()

	assert.Equal(t, 10, cfg.Timeout)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, 2, cfg.RateLimitRate)
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Config{}, logger.Get())
	assert.Error(t, err)
}
