package test

import (
	"context"
	"time"

	"github.com/celestiaorg/vmbot/internal/config"
)

// DefaultTestTimeout is the default timeout for test environments.
const DefaultTestTimeout = 30 * time.Second

// Option represents a configuration option for the test environment.
type Option func(*TestEnvironment)

// WithTimeout returns an option that sets the test environment timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(env *TestEnvironment) {
		if env.cancelFunc != nil {
			env.cancelFunc()
		}
		env.ctx, env.cancelFunc = context.WithTimeout(context.Background(), timeout)
	}
}

// WithAllowedChannel restricts instance commands to channelID.
func WithAllowedChannel(channelID string) Option {
	return func(env *TestEnvironment) {
		env.Config.AllowedChannelID = channelID
	}
}

// WithConfig replaces the default bot configuration.
func WithConfig(cfg *config.BotConfig) Option {
	return func(env *TestEnvironment) {
		env.Config = cfg
	}
}

// WithCleanupFunc returns an option that adds a cleanup function to be
// called when the environment is cleaned up.
func WithCleanupFunc(cleanup func()) Option {
	return func(env *TestEnvironment) {
		oldCleanup := env.cleanup
		env.cleanup = func() {
			if cleanup != nil {
				cleanup()
			}
			if oldCleanup != nil {
				oldCleanup()
			}
		}
	}
}
