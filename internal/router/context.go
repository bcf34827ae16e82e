package router

import "context"

// Replier sends a plain-text reply to the channel a command came from
type Replier interface {
	Reply(ctx context.Context, content string) error
}

// ReplierFunc adapts a function to the Replier interface
type ReplierFunc func(ctx context.Context, content string) error

// Reply calls f
func (f ReplierFunc) Reply(ctx context.Context, content string) error {
	return f(ctx, content)
}

// CommandContext is supplied by the chat gateway for each command. The router
// only reads ChannelID and writes through Reply; the rest is for logging.
type CommandContext struct {
	ChannelID    string
	UserID       string
	Username     string
	InvocationID string
	Reply        Replier
}

// HandlerFunc runs one command. On success the handler has already replied.
type HandlerFunc func(ctx context.Context, cc CommandContext) error
