package common

import (
	"fmt"
	"strings"
)

func RedisKeyChannel(channelID string) string {
	return fmt.Sprintf("discord:channel:%s", channelID)
}

func RedisKeyRole(guildID, roleID string) string {
	return fmt.Sprintf("discord:role:%s:%s", guildID, roleID)
}

func RedisKeyMember(guildID, userID string) string {
	return fmt.Sprintf("discord:member:%s:%s", guildID, userID)
}

func RedisKeyUser(userID string) string {
	return fmt.Sprintf("discord:user:%s", userID)
}

// FromRedisKey returns the last id of a key built by the functions above.
func FromRedisKey(key string) string {
	parts := strings.Split(key, ":")
	return parts[len(parts)-1]
}
