package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", Config{Host: "cache", Port: 6380}.Addr())
	assert.Equal(t, "[::1]:6379", Config{Host: "::1", Port: 6379}.Addr())
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Host: "localhost"}.Enabled())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	// Reserve a port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, Config{Host: "127.0.0.1", Port: port, DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
