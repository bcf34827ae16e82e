// Package constants provides centralized definitions of constants used throughout the application
package constants

// Chat gateway
const (
	// EnvDiscordToken is the bot token used to authenticate with Discord
	EnvDiscordToken = "DISCORD_TOKEN"
	// EnvAllowedChannelID restricts instance commands to one channel. Unset means every channel.
	EnvAllowedChannelID = "ALLOWED_CHANNEL_ID"
	// EnvCommandPrefix is the prefix that marks a chat message as a command
	EnvCommandPrefix = "COMMAND_PREFIX"
)

// Managed instance
const (
	EnvGCPProjectID = "GCP_PROJECT_ID"
	EnvGCPZone      = "GCP_ZONE"
	EnvGCPInstance  = "GCP_INSTANCE"
)

// Service account key fields
const (
	EnvGCPType                = "GCP_TYPE"
	EnvGCPPrivateKeyID        = "GCP_PRIVATE_KEY_ID"
	EnvGCPPrivateKey          = "GCP_PRIVATE_KEY"
	EnvGCPClientEmail         = "GCP_CLIENT_EMAIL"
	EnvGCPClientID            = "GCP_CLIENT_ID"
	EnvGCPAuthURI             = "GCP_AUTH_URI"
	EnvGCPTokenURI            = "GCP_TOKEN_URI"
	EnvGCPAuthProviderCertURL = "GCP_AUTH_PROVIDER_CERT_URL"
	EnvGCPClientCertURL       = "GCP_CLIENT_CERT_URL"
)

// Operations
const (
	// EnvHealthAddr is the listen address of the health and metrics server
	EnvHealthAddr = "HEALTH_ADDR"
)

// Defaults
const (
	DefaultCommandPrefix = "%"
	DefaultHealthAddr    = ":8080"
)
