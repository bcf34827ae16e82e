package test

import (
	"context"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/vmbot/internal/api"
	"github.com/celestiaorg/vmbot/internal/config"
	"github.com/celestiaorg/vmbot/internal/discord"
	"github.com/celestiaorg/vmbot/internal/metrics"
	"github.com/celestiaorg/vmbot/internal/router"
	"github.com/celestiaorg/vmbot/test/mocks"
)

// TestEnvironment encapsulates all components needed for end-to-end testing.
// It provides:
//   - The real command router and metrics
//   - The real ops HTTP server
//   - A mocked instance controller
//   - A fake gateway whose connection state the test controls
type TestEnvironment struct {
	t *testing.T

	Config     *config.BotConfig
	Controller *mocks.MockInstanceController
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	Router     *router.Router
	Gateway    *FakeGateway
	App        *fiber.App

	ctx        context.Context
	cancelFunc context.CancelFunc

	cleanup func()
}

// FakeGateway reports a connection state set by the test.
type FakeGateway struct {
	connected atomic.Bool
}

// Connected reports the configured state.
func (g *FakeGateway) Connected() bool {
	return g.connected.Load()
}

// SetConnected changes the reported state.
func (g *FakeGateway) SetConnected(connected bool) {
	g.connected.Store(connected)
}

// DefaultConfig returns the configuration environments start from. No
// channel restriction is set.
func DefaultConfig() *config.BotConfig {
	return &config.BotConfig{
		DiscordToken:  "test-token",
		CommandPrefix: "%",
		ProjectID:     "test-project",
		Zone:          "asia-east1-b",
		InstanceName:  "palworld",
	}
}

// NewTestEnvironment creates a new test environment with the given options.
// The environment must be cleaned up after use by calling Cleanup.
func NewTestEnvironment(t *testing.T, opts ...Option) *TestEnvironment {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)

	env := &TestEnvironment{
		t:          t,
		Config:     DefaultConfig(),
		Controller: mocks.NewMockInstanceController(),
		Registry:   prometheus.NewRegistry(),
		Gateway:    &FakeGateway{},
		ctx:        ctx,
		cancelFunc: cancel,
	}
	env.Gateway.SetConnected(true)

	env.cleanup = func() {
		if env.cancelFunc != nil {
			env.cancelFunc()
		}
	}

	for _, opt := range opts {
		opt(env)
	}

	env.Metrics = metrics.New(env.Registry)
	env.Router = router.New(env.Config, env.Controller, env.Metrics)
	env.App = api.NewServer(env.Gateway, env.Registry)

	return env
}

// Send delivers a chat message from channelID as the gateway would and
// returns the replies posted back. Messages that are not commands produce no
// replies.
func (e *TestEnvironment) Send(channelID, content string) []string {
	e.t.Helper()

	name, ok := discord.ParseCommand(e.Config.CommandPrefix, content)
	if !ok {
		return nil
	}

	replier := mocks.NewMockReplier()
	e.Router.Handle(e.ctx, name, router.CommandContext{
		ChannelID: channelID,
		UserID:    "1001",
		Username:  "tester",
		Reply:     replier,
	})
	return replier.Replies()
}

// Get issues a GET request against the ops server and returns the status
// code and body.
func (e *TestEnvironment) Get(path string) (int, string) {
	e.t.Helper()

	resp, err := e.App.Test(httptest.NewRequest("GET", path, nil), int(time.Second.Milliseconds()))
	require.NoError(e.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp.StatusCode, string(body)
}

// Context returns the environment's context, which is automatically
// canceled when the environment is cleaned up.
func (e *TestEnvironment) Context() context.Context {
	return e.ctx
}

// Cleanup tears down the test environment, releasing all resources.
// This should be deferred immediately after creating the environment.
func (e *TestEnvironment) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// Require returns a require.Assertions instance for this environment.
func (e *TestEnvironment) Require() *require.Assertions {
	return require.New(e.t)
}

// T returns the testing.T instance for this environment.
func (e *TestEnvironment) T() *testing.T {
	return e.t
}
