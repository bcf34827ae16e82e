package router

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcompute "google.golang.org/api/compute/v1"

	"github.com/celestiaorg/vmbot/internal/compute"
	"github.com/celestiaorg/vmbot/internal/config"
	"github.com/celestiaorg/vmbot/internal/logger"
	"github.com/celestiaorg/vmbot/internal/metrics"
	"github.com/celestiaorg/vmbot/test/mocks"
)

const failOpenWarning = "ALLOWED_CHANNEL_ID is not set, command allowed in every channel"

var logHook *logtest.Hook

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	logHook = logtest.NewLocal(logger.Instance())
	os.Exit(m.Run())
}

func testConfig(allowedChannelID string) *config.BotConfig {
	return &config.BotConfig{
		AllowedChannelID: allowedChannelID,
		CommandPrefix:    "%",
		ProjectID:        "my-project",
		Zone:             "asia-east1-b",
		InstanceName:     "palworld",
	}
}

// newTestRouter wires a router to a mock controller
func newTestRouter(allowedChannelID string) (*Router, *mocks.MockInstanceController) {
	controller := mocks.NewMockInstanceController()
	return New(testConfig(allowedChannelID), controller, nil), controller
}

func invoke(r *Router, name, channelID string) *mocks.MockReplier {
	replier := mocks.NewMockReplier()
	r.Handle(context.Background(), name, CommandContext{
		ChannelID: channelID,
		UserID:    "1001",
		Username:  "tester",
		Reply:     replier,
	})
	return replier
}

func countWarnings(message string) int {
	n := 0
	for _, e := range logHook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == message {
			n++
		}
	}
	return n
}

func TestGatedCommandsDeniedOutsideAllowedChannel(t *testing.T) {
	for _, name := range []string{CommandStart, CommandStop, CommandStatus} {
		t.Run(name, func(t *testing.T) {
			r, controller := newTestRouter("42")

			replier := invoke(r, name, "7")

			require.Len(t, replier.Replies(), 1)
			assert.Contains(t, replier.Replies()[0], "<#42>")
			assert.Equal(t, channelDeniedMessage("42"), replier.Replies()[0])
			assert.Zero(t, controller.CallCount(), "action must not be invoked")
		})
	}
}

func TestFailOpenWithoutAllowedChannel(t *testing.T) {
	tests := []struct {
		name string
		op   compute.Operation
		want string
	}{
		{name: CommandStart, op: compute.OpStart, want: MsgStartSent},
		{name: CommandStop, op: compute.OpStop, want: MsgStopSent},
		{name: CommandStatus, op: compute.OpGet, want: "🟢 running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logHook.Reset()
			r, controller := newTestRouter("")

			replier := invoke(r, tt.name, "any-channel")

			assert.Equal(t, []string{tt.want}, replier.Replies())
			require.Len(t, controller.Calls(), 1)
			assert.Equal(t, tt.op, controller.Calls()[0].Operation)
			assert.Equal(t, 1, countWarnings(failOpenWarning), "one operator warning per invocation")
		})
	}
}

func TestFailOpenWarnsOnEveryInvocation(t *testing.T) {
	logHook.Reset()
	r, _ := newTestRouter("")

	invoke(r, CommandStatus, "1")
	invoke(r, CommandStatus, "2")
	invoke(r, CommandDestroy, "3")

	assert.Equal(t, 2, countWarnings(failOpenWarning), "ungated commands do not warn")
}

func TestProviderFailureRelayedOnce(t *testing.T) {
	networkErr := errors.New("dial tcp 142.250.0.1:443: connect: network is unreachable")

	tests := []struct {
		name      string
		configure func(c *mocks.MockInstanceController)
		prefix    string
	}{
		{
			name: CommandStart,
			configure: func(c *mocks.MockInstanceController) {
				c.StartInstanceFunc = func(context.Context, compute.InstanceIdentity) (*gcompute.Operation, error) {
					return nil, networkErr
				}
			},
			prefix: "Error while starting VM: ",
		},
		{
			name: CommandStop,
			configure: func(c *mocks.MockInstanceController) {
				c.StopInstanceFunc = func(context.Context, compute.InstanceIdentity) (*gcompute.Operation, error) {
					return nil, networkErr
				}
			},
			prefix: "Error while stopping VM: ",
		},
		{
			name: CommandStatus,
			configure: func(c *mocks.MockInstanceController) {
				c.GetStatusFunc = func(context.Context, compute.InstanceIdentity) (compute.InstanceStatus, error) {
					return "", networkErr
				}
			},
			prefix: "Error while querying VM status: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, controller := newTestRouter("42")
			tt.configure(controller)

			var replier *mocks.MockReplier
			assert.NotPanics(t, func() {
				replier = invoke(r, tt.name, "42")
			})

			require.Len(t, replier.Replies(), 1)
			assert.True(t, strings.HasPrefix(replier.Replies()[0], tt.prefix))
			assert.Contains(t, replier.Replies()[0], networkErr.Error())
			assert.Equal(t, 1, controller.CallCount())
		})
	}
}

func TestStatusReplies(t *testing.T) {
	tests := []struct {
		status compute.InstanceStatus
		want   string
	}{
		{compute.StatusRunning, "🟢 running"},
		{compute.StatusTerminated, "🔴 terminated"},
		{compute.StatusStopping, "🟡 stopping"},
		{compute.StatusProvisioning, "🟡 provisioning"},
		{compute.InstanceStatus("REPAIRING"), "❓ unknown status: REPAIRING"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r, controller := newTestRouter("42")
			controller.GetStatusFunc = func(context.Context, compute.InstanceIdentity) (compute.InstanceStatus, error) {
				return tt.status, nil
			}

			replier := invoke(r, CommandStatus, "42")
			assert.Equal(t, []string{tt.want}, replier.Replies())
		})
	}
}

func TestActionsTargetConfiguredInstance(t *testing.T) {
	r, controller := newTestRouter("42")

	invoke(r, CommandStart, "42")

	require.Len(t, controller.Calls(), 1)
	assert.Equal(t, compute.InstanceIdentity{
		ProjectID: "my-project",
		Zone:      "asia-east1-b",
		Name:      "palworld",
	}, controller.Calls()[0].Identity)
}

func TestRefusalCommandIsUngated(t *testing.T) {
	for _, channel := range []string{"42", "7", ""} {
		t.Run("channel "+channel, func(t *testing.T) {
			r, controller := newTestRouter("42")

			replier := invoke(r, CommandDestroy, channel)

			assert.Equal(t, []string{MsgRefusal}, replier.Replies())
			assert.Zero(t, controller.CallCount())
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	r, controller := newTestRouter("42")

	replier := invoke(r, "reboot", "42")

	assert.Equal(t, []string{`Error while executing command: command "reboot" is not found`}, replier.Replies())
	assert.Zero(t, controller.CallCount())
}

func TestPanickingActionIsRecovered(t *testing.T) {
	r, controller := newTestRouter("42")
	controller.GetStatusFunc = func(context.Context, compute.InstanceIdentity) (compute.InstanceStatus, error) {
		panic("nil map write")
	}

	var replier *mocks.MockReplier
	require.NotPanics(t, func() {
		replier = invoke(r, CommandStatus, "42")
	})

	require.Len(t, replier.Replies(), 1)
	assert.Equal(t, "Error while executing command: panic: nil map write", replier.Replies()[0])
}

func TestReplyFailureIsSwallowed(t *testing.T) {
	r, controller := newTestRouter("42")
	replier := mocks.NewMockReplier()
	replier.ReplyFunc = func(context.Context, string) error {
		return errors.New("discord: 50013 missing permissions")
	}

	assert.NotPanics(t, func() {
		r.Handle(context.Background(), CommandStart, CommandContext{ChannelID: "42", Reply: replier})
	})
	assert.Len(t, replier.Replies(), 1)
	assert.Equal(t, 1, controller.CallCount())
}

func TestHandleWithoutReplier(t *testing.T) {
	r, _ := newTestRouter("42")
	assert.NotPanics(t, func() {
		r.Handle(context.Background(), CommandStatus, CommandContext{ChannelID: "42"})
	})
}

func TestHelpListsCommands(t *testing.T) {
	r, _ := newTestRouter("42")

	replier := invoke(r, CommandHelp, "7")

	require.Len(t, replier.Replies(), 1)
	for _, name := range r.Commands() {
		assert.Contains(t, replier.Replies()[0], "`%"+name+"`")
	}
	assert.Equal(t, []string{CommandStart, CommandStop, CommandStatus, CommandDestroy, CommandHelp}, r.Commands())
}

func TestCommandMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	controller := mocks.NewMockInstanceController()
	controller.StopInstanceFunc = func(context.Context, compute.InstanceIdentity) (*gcompute.Operation, error) {
		return nil, errors.New("quota exceeded")
	}
	r := New(testConfig("42"), controller, metrics.New(reg))

	invoke(r, CommandStatus, "42")
	invoke(r, CommandStart, "7")
	invoke(r, CommandStop, "42")
	invoke(r, "nope", "42")

	expected := `
# HELP vmbot_commands_total Chat commands handled, by command and outcome.
# TYPE vmbot_commands_total counter
vmbot_commands_total{command="start",outcome="denied"} 1
vmbot_commands_total{command="status",outcome="ok"} 1
vmbot_commands_total{command="stop",outcome="failed"} 1
vmbot_commands_total{command="unknown",outcome="unknown_command"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "vmbot_commands_total"))
}
