package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	require.Equal(t, "discord:channel:1", RedisKeyChannel("1"))
	require.Equal(t, "discord:role:1:2", RedisKeyRole("1", "2"))
	require.Equal(t, "discord:member:1:3", RedisKeyMember("1", "3"))
	require.Equal(t, "discord:user:4", RedisKeyUser("4"))

	require.Equal(t, "3", FromRedisKey(RedisKeyMember("1", "3")))
	require.Equal(t, "4", FromRedisKey(RedisKeyUser("4")))
}
