package router

import "fmt"

// Command names
const (
	CommandStart   = "start"
	CommandStop    = "stop"
	CommandStatus  = "status"
	CommandDestroy = "destroy"
	CommandHelp    = "help"
)

// Fixed replies
const (
	MsgStartSent = "VM start command sent!"
	MsgStopSent  = "VM stop command sent!"
	MsgRefusal   = "Sorry, I can't do that."
)

// Action descriptions used in failure replies
const (
	actionStart   = "starting VM"
	actionStop    = "stopping VM"
	actionStatus  = "querying VM status"
	actionExecute = "executing command"
)

func channelDeniedMessage(allowedChannelID string) string {
	return fmt.Sprintf("⚠️ This command can only be used in a specific channel. Please use <#%s>!", allowedChannelID)
}

func failureMessage(action string, err error) string {
	if err == nil {
		return fmt.Sprintf("Error while %s.", action)
	}
	return fmt.Sprintf("Error while %s: %s", action, err.Error())
}
