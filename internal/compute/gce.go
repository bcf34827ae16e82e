package compute

import (
	"context"
	"errors"
	"fmt"
	"time"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"

	"github.com/celestiaorg/vmbot/internal/compute/types"
	"github.com/celestiaorg/vmbot/internal/config"
	"github.com/celestiaorg/vmbot/internal/logger"
	"github.com/celestiaorg/vmbot/internal/metrics"
)

// ServiceFactory builds an authenticated instances client from key material
type ServiceFactory func(ctx context.Context, key config.ServiceAccountKey) (types.InstancesService, error)

// NewGCEService creates a fresh credential and Compute Engine client
func NewGCEService(ctx context.Context, key config.ServiceAccountKey) (types.InstancesService, error) {
	creds, err := NewServiceCredential(ctx, key)
	if err != nil {
		return nil, err
	}

	svc, err := compute.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}
	return &gceInstances{instances: svc.Instances}, nil
}

// gceInstances adapts the generated API client to types.InstancesService
type gceInstances struct {
	instances *compute.InstancesService
}

func (g *gceInstances) Start(ctx context.Context, project, zone, instance string) (*compute.Operation, error) {
	return g.instances.Start(project, zone, instance).Context(ctx).Do()
}

func (g *gceInstances) Stop(ctx context.Context, project, zone, instance string) (*compute.Operation, error) {
	return g.instances.Stop(project, zone, instance).Context(ctx).Do()
}

func (g *gceInstances) Get(ctx context.Context, project, zone, instance string) (*compute.Instance, error) {
	return g.instances.Get(project, zone, instance).Context(ctx).Do()
}

// GCEController implements InstanceController against Compute Engine.
// Every call builds a new credential and client; nothing is cached and
// nothing is retried.
type GCEController struct {
	key        config.ServiceAccountKey
	newService ServiceFactory
	metrics    *metrics.Metrics
}

// NewGCEController creates a controller using the key material in cfg
func NewGCEController(cfg *config.BotConfig, m *metrics.Metrics) *GCEController {
	return &GCEController{
		key:        cfg.Credential,
		newService: NewGCEService,
		metrics:    m,
	}
}

// SetServiceFactory replaces the client factory, used by tests
func (c *GCEController) SetServiceFactory(f ServiceFactory) {
	c.newService = f
}

// StartInstance starts the instance
func (c *GCEController) StartInstance(ctx context.Context, id InstanceIdentity) (*compute.Operation, error) {
	var op *compute.Operation
	err := c.call(ctx, OpStart, id, func(svc types.InstancesService) error {
		var err error
		op, err = svc.Start(ctx, id.ProjectID, id.Zone, id.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// StopInstance stops the instance
func (c *GCEController) StopInstance(ctx context.Context, id InstanceIdentity) (*compute.Operation, error) {
	var op *compute.Operation
	err := c.call(ctx, OpStop, id, func(svc types.InstancesService) error {
		var err error
		op, err = svc.Stop(ctx, id.ProjectID, id.Zone, id.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// GetStatus fetches the instance and returns its status
func (c *GCEController) GetStatus(ctx context.Context, id InstanceIdentity) (InstanceStatus, error) {
	var status InstanceStatus
	err := c.call(ctx, OpGet, id, func(svc types.InstancesService) error {
		inst, err := svc.Get(ctx, id.ProjectID, id.Zone, id.Name)
		if err != nil {
			return err
		}
		if inst == nil {
			return errors.New("empty instance in response")
		}
		status = InstanceStatus(inst.Status)
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (c *GCEController) call(ctx context.Context, op Operation, id InstanceIdentity, fn func(types.InstancesService) error) error {
	start := time.Now()

	err := c.invoke(ctx, fn)
	c.metrics.ObserveProviderCall(string(op), time.Since(start), err)

	fields := logger.Fields{
		"operation": op,
		"instance":  id.String(),
		"elapsed":   time.Since(start).String(),
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("Provider call failed", fields)
		return &ProviderError{Operation: op, Instance: id, Err: err}
	}

	logger.DebugWithFields("Provider call succeeded", fields)
	return nil
}

func (c *GCEController) invoke(ctx context.Context, fn func(types.InstancesService) error) error {
	svc, err := c.newService(ctx, c.key)
	if err != nil {
		return err
	}
	return fn(svc)
}
