// Package types defines the error taxonomy shared by the bot packages.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tags the variant carried by a BotError
type ErrorKind int

const (
	// KindChannelNotAllowed means a gated command came from a channel other than the allowed one
	KindChannelNotAllowed ErrorKind = iota + 1
	// KindActionFailed means an instance action returned an error
	KindActionFailed
	// KindConfigurationMissing means required configuration was absent at startup
	KindConfigurationMissing
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindChannelNotAllowed:
		return "ChannelNotAllowed"
	case KindActionFailed:
		return "ActionFailed"
	case KindConfigurationMissing:
		return "ConfigurationMissing"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// BotError is the single error type surfaced by the bot. Only the fields
// relevant to Kind are set.
type BotError struct {
	Kind ErrorKind

	// Command is the chat command that was being handled
	Command string
	// AllowedChannelID is set for KindChannelNotAllowed
	AllowedChannelID string
	// Action describes what was attempted for KindActionFailed, e.g. "starting VM"
	Action string
	// Missing lists the absent keys for KindConfigurationMissing
	Missing []string

	Err error
}

// ChannelNotAllowed builds a KindChannelNotAllowed error
func ChannelNotAllowed(command, allowedChannelID string) *BotError {
	return &BotError{Kind: KindChannelNotAllowed, Command: command, AllowedChannelID: allowedChannelID}
}

// ActionFailed wraps the cause of a failed instance action
func ActionFailed(command, action string, err error) *BotError {
	return &BotError{Kind: KindActionFailed, Command: command, Action: action, Err: err}
}

// ConfigurationMissing lists required configuration keys that were not provided
func ConfigurationMissing(keys ...string) *BotError {
	return &BotError{Kind: KindConfigurationMissing, Missing: keys}
}

// Error implements the error interface
func (e *BotError) Error() string {
	switch e.Kind {
	case KindChannelNotAllowed:
		return fmt.Sprintf("command %q is only allowed in channel %s", e.Command, e.AllowedChannelID)
	case KindActionFailed:
		if e.Err == nil {
			return fmt.Sprintf("%s failed", e.Action)
		}
		return fmt.Sprintf("%s: %v", e.Action, e.Err)
	case KindConfigurationMissing:
		return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
	default:
		return fmt.Sprintf("unknown bot error (kind %d)", int(e.Kind))
	}
}

// Unwrap returns the underlying cause, if any
func (e *BotError) Unwrap() error {
	return e.Err
}

// AsBotError reports whether err wraps a *BotError and returns it
func AsBotError(err error) (*BotError, bool) {
	var be *BotError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
