// Package mocks provides mock implementations of the interfaces the bot
// depends on.
//
// Each mock follows these principles:
//  1. Implements the same interface as the real component
//  2. Provides configurable behavior through function fields
//  3. Records calls so tests can assert on them
//  4. Uses consistent naming: Mock{Interface} for the mock type
//
// Example usage:
//
//	controller := mocks.NewMockInstanceController()
//	controller.GetStatusFunc = func(ctx context.Context, id compute.InstanceIdentity) (compute.InstanceStatus, error) {
//		return compute.StatusRunning, nil
//	}
package mocks
