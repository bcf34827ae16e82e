package types

import (
	"context"

	compute "google.golang.org/api/compute/v1"
)

// InstancesService is the subset of the Compute Engine instances API used to
// control a single VM
type InstancesService interface {
	Start(ctx context.Context, project, zone, instance string) (*compute.Operation, error)
	Stop(ctx context.Context, project, zone, instance string) (*compute.Operation, error)
	Get(ctx context.Context, project, zone, instance string) (*compute.Instance, error)
}
