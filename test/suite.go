package test

import (
	"github.com/stretchr/testify/suite"
)

// Suite runs each test against a fresh TestEnvironment. Options are applied
// to every environment the suite creates.
type Suite struct {
	suite.Suite

	Env     *TestEnvironment
	Options []Option
}

// SetupTest creates the environment for the next test
func (s *Suite) SetupTest() {
	s.Env = NewTestEnvironment(s.T(), s.Options...)
}

// TearDownTest releases the environment of the finished test
func (s *Suite) TearDownTest() {
	if s.Env != nil {
		s.Env.Cleanup()
		s.Env = nil
	}
}
