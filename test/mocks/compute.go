package mocks

import (
	"context"
	"sync"

	gcompute "google.golang.org/api/compute/v1"

	"github.com/celestiaorg/vmbot/internal/compute"
)

// MockInstanceController implements compute.InstanceController for testing
type MockInstanceController struct {
	StartInstanceFunc func(ctx context.Context, id compute.InstanceIdentity) (*gcompute.Operation, error)
	StopInstanceFunc  func(ctx context.Context, id compute.InstanceIdentity) (*gcompute.Operation, error)
	GetStatusFunc     func(ctx context.Context, id compute.InstanceIdentity) (compute.InstanceStatus, error)

	mu    sync.Mutex
	calls []ControllerCall
}

// ControllerCall records one call made to the mock
type ControllerCall struct {
	Operation compute.Operation
	Identity  compute.InstanceIdentity
}

// NewMockInstanceController returns a mock whose operations all succeed and
// whose instance reports RUNNING
func NewMockInstanceController() *MockInstanceController {
	return &MockInstanceController{}
}

// StartInstance calls the mocked StartInstance function
func (m *MockInstanceController) StartInstance(ctx context.Context, id compute.InstanceIdentity) (*gcompute.Operation, error) {
	m.record(compute.OpStart, id)
	if m.StartInstanceFunc != nil {
		return m.StartInstanceFunc(ctx, id)
	}
	return &gcompute.Operation{Name: "operation-start", Status: "RUNNING"}, nil
}

// StopInstance calls the mocked StopInstance function
func (m *MockInstanceController) StopInstance(ctx context.Context, id compute.InstanceIdentity) (*gcompute.Operation, error) {
	m.record(compute.OpStop, id)
	if m.StopInstanceFunc != nil {
		return m.StopInstanceFunc(ctx, id)
	}
	return &gcompute.Operation{Name: "operation-stop", Status: "RUNNING"}, nil
}

// GetStatus calls the mocked GetStatus function
func (m *MockInstanceController) GetStatus(ctx context.Context, id compute.InstanceIdentity) (compute.InstanceStatus, error) {
	m.record(compute.OpGet, id)
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx, id)
	}
	return compute.StatusRunning, nil
}

// Calls returns a copy of the recorded calls
func (m *MockInstanceController) Calls() []ControllerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ControllerCall(nil), m.calls...)
}

// CallCount returns how many provider operations were invoked
func (m *MockInstanceController) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *MockInstanceController) record(op compute.Operation, id compute.InstanceIdentity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ControllerCall{Operation: op, Identity: id})
}
