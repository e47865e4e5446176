package rest

import "fmt"

func Channel(channelID string) string {
	return fmt.Sprintf("/channels/%s", channelID)
}

func ChannelMessages(channelID string) string {
	return fmt.Sprintf("/channels/%s/messages", channelID)
}

func ChannelMessage(channelID, messageID string) string {
	return fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
}

func Guild(guildID string) string {
	return fmt.Sprintf("/guilds/%s", guildID)
}

func GuildChannels(guildID string) string {
	return fmt.Sprintf("/guilds/%s/channels", guildID)
}

func GuildRoles(guildID string) string {
	return fmt.Sprintf("/guilds/%s/roles", guildID)
}

func GuildRole(guildID, roleID string) string {
	return fmt.Sprintf("/guilds/%s/roles/%s", guildID, roleID)
}

func GuildMembers(guildID string) string {
	return fmt.Sprintf("/guilds/%s/members", guildID)
}

func GuildMember(guildID, userID string) string {
	return fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
}

func GuildMemberRole(guildID, userID, roleID string) string {
	return fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
}

func GuildBan(guildID, userID string) string {
	return fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID)
}

func User(userID string) string {
	return fmt.Sprintf("/users/%s", userID)
}

func CurrentUser() string {
	return "/users/@me"
}

func CurrentUserGuilds() string {
	return "/users/@me/guilds"
}

func CurrentUserGuild(guildID string) string {
	return fmt.Sprintf("/users/@me/guilds/%s", guildID)
}

func InteractionCallback(interactionID, token string) string {
	return fmt.Sprintf("/interactions/%s/%s/callback", interactionID, token)
}

func Webhook(applicationID, token string) string {
	return fmt.Sprintf("/webhooks/%s/%s", applicationID, token)
}

// WebhookMessage addresses a message sent through an interaction webhook.
// Use "@original" for the initial response.
func WebhookMessage(applicationID, token, messageID string) string {
	return fmt.Sprintf("/webhooks/%s/%s/messages/%s", applicationID, token, messageID)
}
