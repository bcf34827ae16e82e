// Package router authorizes chat commands, dispatches them to instance
// actions and turns every failure into a chat reply.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/celestiaorg/vmbot/internal/compute"
	"github.com/celestiaorg/vmbot/internal/config"
	"github.com/celestiaorg/vmbot/internal/logger"
	"github.com/celestiaorg/vmbot/internal/metrics"
	"github.com/celestiaorg/vmbot/internal/types"
)

type command struct {
	name    string
	summary string
	handler HandlerFunc
}

// Router owns the command table. It holds no mutable state after New returns,
// so Handle may be called from many goroutines at once.
type Router struct {
	allowedChannelID string
	prefix           string
	identity         compute.InstanceIdentity
	controller       compute.InstanceController
	metrics          *metrics.Metrics

	commands map[string]command
	order    []string
}

// New builds a router for the instance described by cfg
func New(cfg *config.BotConfig, controller compute.InstanceController, m *metrics.Metrics) *Router {
	r := &Router{
		allowedChannelID: cfg.AllowedChannelID,
		prefix:           cfg.CommandPrefix,
		identity:         compute.IdentityFromConfig(cfg),
		controller:       controller,
		metrics:          m,
		commands:         make(map[string]command),
	}

	r.register(CommandStart, "start the VM", r.requireChannel(CommandStart, r.start))
	r.register(CommandStop, "stop the VM", r.requireChannel(CommandStop, r.stop))
	r.register(CommandStatus, "show the VM status", r.requireChannel(CommandStatus, r.status))
	r.register(CommandDestroy, "not available", r.destroy)
	r.register(CommandHelp, "list commands", r.help)

	return r
}

func (r *Router) register(name, summary string, h HandlerFunc) {
	r.commands[name] = command{name: name, summary: summary, handler: h}
	r.order = append(r.order, name)
}

// Commands returns the registered command names in registration order
func (r *Router) Commands() []string {
	return append([]string(nil), r.order...)
}

// Handle runs one command. It never returns an error and never panics: every
// outcome ends in at most one reply to cc.Reply.
func (r *Router) Handle(ctx context.Context, name string, cc CommandContext) {
	if cc.InvocationID == "" {
		cc.InvocationID = uuid.NewString()
	}

	logger.DebugWithFields("Handling command", r.fields(name, cc))

	cmd, ok := r.commands[name]
	if !ok {
		r.fail(ctx, name, cc, types.ActionFailed(name, actionExecute, fmt.Errorf("command %q is not found", name)))
		// Arbitrary user input must not become a label value.
		r.metrics.ObserveCommand("unknown", metrics.OutcomeUnknown)
		return
	}

	if err := r.run(ctx, cmd.handler, cc); err != nil {
		r.metrics.ObserveCommand(name, r.fail(ctx, name, cc, err))
		return
	}
	r.metrics.ObserveCommand(name, metrics.OutcomeOK)
}

// run invokes h and converts a panic into an error
func (r *Router) run(ctx context.Context, h HandlerFunc, cc CommandContext) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h(ctx, cc)
}

// fail is the single place where handler errors become replies. It returns
// the outcome to record.
func (r *Router) fail(ctx context.Context, name string, cc CommandContext, err error) string {
	be, ok := types.AsBotError(err)
	if !ok {
		be = types.ActionFailed(name, actionExecute, err)
	}

	fields := r.fields(name, cc)
	fields["kind"] = be.Kind.String()

	switch be.Kind {
	case types.KindChannelNotAllowed:
		// The gate has already replied.
		logger.InfoWithFields("Command denied outside allowed channel", fields)
		return metrics.OutcomeDenied
	case types.KindActionFailed:
		if be.Err != nil {
			fields["error"] = be.Err.Error()
		}
		logger.ErrorWithFields("Command failed", fields)
		r.reply(ctx, cc, failureMessage(be.Action, be.Err))
		return metrics.OutcomeFailed
	case types.KindConfigurationMissing:
		logger.ErrorWithFields("Command failed on missing configuration", fields)
		r.reply(ctx, cc, failureMessage(actionExecute, be))
		return metrics.OutcomeFailed
	default:
		logger.ErrorWithFields("Command failed with unknown error kind", fields)
		r.reply(ctx, cc, failureMessage(actionExecute, be))
		return metrics.OutcomeFailed
	}
}

// requireChannel wraps next with the single-channel authorization gate.
// With no allowed channel configured every channel passes.
func (r *Router) requireChannel(name string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, cc CommandContext) error {
		if r.allowedChannelID == "" {
			logger.WarnWithFields("ALLOWED_CHANNEL_ID is not set, command allowed in every channel", r.fields(name, cc))
			return next(ctx, cc)
		}
		if cc.ChannelID != r.allowedChannelID {
			r.reply(ctx, cc, channelDeniedMessage(r.allowedChannelID))
			return types.ChannelNotAllowed(name, r.allowedChannelID)
		}
		return next(ctx, cc)
	}
}

func (r *Router) start(ctx context.Context, cc CommandContext) error {
	op, err := r.controller.StartInstance(ctx, r.identity)
	if err != nil {
		return types.ActionFailed(CommandStart, actionStart, err)
	}
	if op != nil {
		r.logOperation(CommandStart, cc, op.Name, op.Status)
	}
	r.reply(ctx, cc, MsgStartSent)
	return nil
}

func (r *Router) stop(ctx context.Context, cc CommandContext) error {
	op, err := r.controller.StopInstance(ctx, r.identity)
	if err != nil {
		return types.ActionFailed(CommandStop, actionStop, err)
	}
	if op != nil {
		r.logOperation(CommandStop, cc, op.Name, op.Status)
	}
	r.reply(ctx, cc, MsgStopSent)
	return nil
}

func (r *Router) status(ctx context.Context, cc CommandContext) error {
	status, err := r.controller.GetStatus(ctx, r.identity)
	if err != nil {
		return types.ActionFailed(CommandStatus, actionStatus, err)
	}
	if !status.Known() {
		logger.WarnWithFields("Unrecognized instance status", logger.Fields{"status": string(status), "instance": r.identity.String()})
	}
	r.reply(ctx, cc, status.Message())
	return nil
}

func (r *Router) destroy(ctx context.Context, cc CommandContext) error {
	r.reply(ctx, cc, MsgRefusal)
	return nil
}

func (r *Router) help(ctx context.Context, cc CommandContext) error {
	lines := make([]string, 0, len(r.order)+1)
	lines = append(lines, "Available commands:")
	for _, name := range r.order {
		cmd := r.commands[name]
		lines = append(lines, fmt.Sprintf("`%s%s` - %s", r.prefix, cmd.name, cmd.summary))
	}
	r.reply(ctx, cc, strings.Join(lines, "\n"))
	return nil
}

// reply sends content. Send failures are logged, not returned.
func (r *Router) reply(ctx context.Context, cc CommandContext, content string) {
	if cc.Reply == nil {
		logger.Warnf("No reply sink for invocation %s, dropping reply %q", cc.InvocationID, content)
		return
	}
	if err := cc.Reply.Reply(ctx, content); err != nil {
		logger.Errorf("Failed to send reply to channel %s: %v", cc.ChannelID, err)
	}
}

func (r *Router) logOperation(name string, cc CommandContext, opName, opStatus string) {
	fields := r.fields(name, cc)
	fields["operation"] = opName
	fields["operation_status"] = opStatus
	logger.InfoWithFields("Instance operation submitted", fields)
}

func (r *Router) fields(name string, cc CommandContext) logger.Fields {
	return logger.Fields{
		"command":       name,
		"channel_id":    cc.ChannelID,
		"user_id":       cc.UserID,
		"username":      cc.Username,
		"invocation_id": cc.InvocationID,
	}
}
