package compute

import (
	"context"

	compute "google.golang.org/api/compute/v1"

	"github.com/celestiaorg/vmbot/internal/compute/types"
	"github.com/celestiaorg/vmbot/internal/config"
)

// mockInstancesService implements types.InstancesService for testing
type mockInstancesService struct {
	StartFunc func(ctx context.Context, project, zone, instance string) (*compute.Operation, error)
	StopFunc  func(ctx context.Context, project, zone, instance string) (*compute.Operation, error)
	GetFunc   func(ctx context.Context, project, zone, instance string) (*compute.Instance, error)

	calls []string
}

// Start calls the mocked Start function
func (s *mockInstancesService) Start(ctx context.Context, project, zone, instance string) (*compute.Operation, error) {
	s.calls = append(s.calls, "start:"+project+"/"+zone+"/"+instance)
	if s.StartFunc != nil {
		return s.StartFunc(ctx, project, zone, instance)
	}
	return &compute.Operation{Name: "operation-start", OperationType: "start"}, nil
}

// Stop calls the mocked Stop function
func (s *mockInstancesService) Stop(ctx context.Context, project, zone, instance string) (*compute.Operation, error) {
	s.calls = append(s.calls, "stop:"+project+"/"+zone+"/"+instance)
	if s.StopFunc != nil {
		return s.StopFunc(ctx, project, zone, instance)
	}
	return &compute.Operation{Name: "operation-stop", OperationType: "stop"}, nil
}

// Get calls the mocked Get function
func (s *mockInstancesService) Get(ctx context.Context, project, zone, instance string) (*compute.Instance, error) {
	s.calls = append(s.calls, "get:"+project+"/"+zone+"/"+instance)
	if s.GetFunc != nil {
		return s.GetFunc(ctx, project, zone, instance)
	}
	return &compute.Instance{Name: instance, Status: string(StatusRunning)}, nil
}

// countingFactory returns a ServiceFactory that hands out svc and counts how
// many clients were built
func countingFactory(svc types.InstancesService, built *int) ServiceFactory {
	return func(_ context.Context, _ config.ServiceAccountKey) (types.InstancesService, error) {
		*built++
		return svc, nil
	}
}
