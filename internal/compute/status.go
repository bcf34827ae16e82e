package compute

import "fmt"

// InstanceStatus is the raw status string reported by Compute Engine
type InstanceStatus string

// Recognized statuses. Anything else is passed through.
const (
	StatusRunning      InstanceStatus = "RUNNING"
	StatusTerminated   InstanceStatus = "TERMINATED"
	StatusStopping     InstanceStatus = "STOPPING"
	StatusProvisioning InstanceStatus = "PROVISIONING"
)

var statusMessages = map[InstanceStatus]string{
	StatusRunning:      "🟢 running",
	StatusTerminated:   "🔴 terminated",
	StatusStopping:     "🟡 stopping",
	StatusProvisioning: "🟡 provisioning",
}

// Known reports whether the status is one of the recognized values
func (s InstanceStatus) Known() bool {
	_, ok := statusMessages[s]
	return ok
}

// Message returns the human-readable status text
func (s InstanceStatus) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("❓ unknown status: %s", string(s))
}
