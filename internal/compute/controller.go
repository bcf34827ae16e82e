// Package compute controls the lifecycle of one Compute Engine instance.
package compute

import (
	"context"
	"fmt"

	compute "google.golang.org/api/compute/v1"

	"github.com/celestiaorg/vmbot/internal/config"
)

// InstanceController defines the three control-plane operations the bot exposes
type InstanceController interface {
	// StartInstance starts the instance and returns the provider operation
	StartInstance(ctx context.Context, id InstanceIdentity) (*compute.Operation, error)

	// StopInstance stops the instance and returns the provider operation
	StopInstance(ctx context.Context, id InstanceIdentity) (*compute.Operation, error)

	// GetStatus returns the current status of the instance
	GetStatus(ctx context.Context, id InstanceIdentity) (InstanceStatus, error)
}

// InstanceIdentity names the managed instance
type InstanceIdentity struct {
	ProjectID string
	Zone      string
	Name      string
}

// IdentityFromConfig returns the identity of the configured instance
func IdentityFromConfig(cfg *config.BotConfig) InstanceIdentity {
	return InstanceIdentity{
		ProjectID: cfg.ProjectID,
		Zone:      cfg.Zone,
		Name:      cfg.InstanceName,
	}
}

// String renders the identity as project/zone/name
func (id InstanceIdentity) String() string {
	return fmt.Sprintf("%s/%s/%s", id.ProjectID, id.Zone, id.Name)
}

// Operation names a control-plane call
type Operation string

// Supported operations
const (
	OpStart Operation = "start"
	OpStop  Operation = "stop"
	OpGet   Operation = "get"
)

// ProviderError is returned for any failed control-plane call: credential
// construction, transport, auth, malformed response or provider rejection.
type ProviderError struct {
	Operation Operation
	Instance  InstanceIdentity
	Err       error
}

// Error implements the error interface for ProviderError
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s instance %q: %v", e.Operation, e.Instance.Name, e.Err)
}

// Unwrap returns the underlying provider error
func (e *ProviderError) Unwrap() error {
	return e.Err
}

var _ InstanceController = (*GCEController)(nil)
