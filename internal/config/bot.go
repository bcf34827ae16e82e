// Package config loads the bot configuration from the environment.
package config

import (
	"strings"

	envconfig "github.com/celestiaorg/vmbot/config"
	"github.com/celestiaorg/vmbot/internal/constants"
	"github.com/celestiaorg/vmbot/internal/types"
)

// ServiceAccountKey mirrors the JSON key file of a Google service account.
type ServiceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url,omitempty"`
	ClientX509CertURL       string `json:"client_x509_cert_url,omitempty"`
}

// BotConfig is loaded once at startup and never mutated afterwards.
type BotConfig struct {
	DiscordToken     string
	AllowedChannelID string
	CommandPrefix    string
	HealthAddr       string

	ProjectID    string
	Zone         string
	InstanceName string

	Credential ServiceAccountKey
}

// NewBotConfig reads the configuration from the environment. It does not
// validate; call Validate or ValidateCloud depending on what will run.
func NewBotConfig() *BotConfig {
	projectID := envconfig.GetEnvTrimmed(constants.EnvGCPProjectID)

	return &BotConfig{
		DiscordToken:     envconfig.GetEnvTrimmed(constants.EnvDiscordToken),
		AllowedChannelID: normalizeChannelID(envconfig.GetEnvTrimmed(constants.EnvAllowedChannelID)),
		CommandPrefix:    envconfig.GetEnv(constants.EnvCommandPrefix, constants.DefaultCommandPrefix),
		HealthAddr:       envconfig.GetEnv(constants.EnvHealthAddr, constants.DefaultHealthAddr),

		ProjectID:    projectID,
		Zone:         envconfig.GetEnvTrimmed(constants.EnvGCPZone),
		InstanceName: envconfig.GetEnvTrimmed(constants.EnvGCPInstance),

		Credential: ServiceAccountKey{
			Type:                    envconfig.GetEnvTrimmed(constants.EnvGCPType),
			ProjectID:               projectID,
			PrivateKeyID:            envconfig.GetEnvTrimmed(constants.EnvGCPPrivateKeyID),
			PrivateKey:              expandNewlines(envconfig.GetEnv(constants.EnvGCPPrivateKey, "")),
			ClientEmail:             envconfig.GetEnvTrimmed(constants.EnvGCPClientEmail),
			ClientID:                envconfig.GetEnvTrimmed(constants.EnvGCPClientID),
			AuthURI:                 envconfig.GetEnvTrimmed(constants.EnvGCPAuthURI),
			TokenURI:                envconfig.GetEnvTrimmed(constants.EnvGCPTokenURI),
			AuthProviderX509CertURL: envconfig.GetEnvTrimmed(constants.EnvGCPAuthProviderCertURL),
			ClientX509CertURL:       envconfig.GetEnvTrimmed(constants.EnvGCPClientCertURL),
		},
	}
}

// Validate checks everything needed to run the chat bot.
func (c *BotConfig) Validate() error {
	missing := c.missingCloud()
	if c.DiscordToken == "" {
		missing = append([]string{constants.EnvDiscordToken}, missing...)
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		missing = append(missing, constants.EnvCommandPrefix)
	}
	if len(missing) > 0 {
		return types.ConfigurationMissing(missing...)
	}
	return nil
}

// ValidateCloud checks only what the instance control client needs.
func (c *BotConfig) ValidateCloud() error {
	if missing := c.missingCloud(); len(missing) > 0 {
		return types.ConfigurationMissing(missing...)
	}
	return nil
}

// AllowsAllChannels reports whether the channel restriction is disabled.
func (c *BotConfig) AllowsAllChannels() bool {
	return c.AllowedChannelID == ""
}

func (c *BotConfig) missingCloud() []string {
	// The two certificate URLs are informational and not needed to mint tokens.
	required := []struct {
		key   string
		value string
	}{
		{constants.EnvGCPProjectID, c.ProjectID},
		{constants.EnvGCPZone, c.Zone},
		{constants.EnvGCPInstance, c.InstanceName},
		{constants.EnvGCPType, c.Credential.Type},
		{constants.EnvGCPPrivateKeyID, c.Credential.PrivateKeyID},
		{constants.EnvGCPPrivateKey, c.Credential.PrivateKey},
		{constants.EnvGCPClientEmail, c.Credential.ClientEmail},
		{constants.EnvGCPClientID, c.Credential.ClientID},
		{constants.EnvGCPAuthURI, c.Credential.AuthURI},
		{constants.EnvGCPTokenURI, c.Credential.TokenURI},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	return missing
}

// normalizeChannelID treats "0" like an unset channel, as a zero id can never
// match a real channel.
func normalizeChannelID(id string) string {
	if strings.TrimLeft(id, "0") == "" {
		return ""
	}
	return id
}

// expandNewlines turns literal "\n" sequences into newlines so a PEM key can
// be stored on a single line in a .env file.
func expandNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
