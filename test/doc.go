// Package test provides infrastructure for end-to-end testing of the bot.
//
// A TestEnvironment wires the real command router, metrics registry and ops
// HTTP server to mocked external dependencies: the instance controller stands
// in for Compute Engine and a fake gateway stands in for Discord.
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    env := test.NewTestEnvironment(t, test.WithAllowedChannel("42"))
//	    defer env.Cleanup()
//
//	    replies := env.Send("42", "%status")
//	    // Use env.Controller to configure provider behavior
//	}
package test
