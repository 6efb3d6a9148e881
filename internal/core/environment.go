// Package core holds cross-cutting primitives shared by every layer.
package core

import "strings"

// Environment is the deployment environment the process runs in. It mainly
// steers logging verbosity and output format.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}

// ParseEnvironment normalises v into a known environment. Unknown or empty
// values fall back to Development so a bare local start still works.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Staging:
		return Staging
	case Testing:
		return Testing
	default:
		return Development
	}
}
