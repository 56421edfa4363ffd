package cache

import (
	"testing"

	"hospital-scheduling/config"
	"hospital-scheduling/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(config.RedisConfig{Host: mr.Host(), Port: mr.Port()}, testutil.NewLogger())
	require.NoError(t, err)
	defer client.Close()
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisClient(config.RedisConfig{Host: host, Port: port}, testutil.NewLogger())
	assert.Error(t, err)
}
