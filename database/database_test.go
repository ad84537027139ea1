package database

import (
	"testing"

	"github.com/nexprep/nexprep/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedis_UnreachableServerDisablesCaching(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Addr = "127.0.0.1:1"

	client := NewRedis(cfg)
	assert.Nil(t, client, "an unreachable redis must yield a nil client, not a startup failure")
}
