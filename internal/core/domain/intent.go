package domain

import "go.trai.ch/zerr"

// BuildIntent selects which dependency subset and which extra build arguments
// apply to an invocation.
type BuildIntent string

const (
	// IntentRelease produces the distributable package artifact.
	IntentRelease BuildIntent = "release-package"
	// IntentCICheck runs the test suite against a warm dependency cache
	// without producing a distributable artifact.
	IntentCICheck BuildIntent = "ci-check"
	// IntentDevShell provisions an interactive development environment and
	// never invokes a build.
	IntentDevShell BuildIntent = "dev-shell"
)

// ParseIntent validates a requested intent value. An unrecognized intent is a
// configuration error reported before any external invocation.
func ParseIntent(s string) (BuildIntent, error) {
	switch BuildIntent(s) {
	case IntentRelease, IntentCICheck, IntentDevShell:
		return BuildIntent(s), nil
	default:
		return "", zerr.With(ErrUnknownIntent, "intent", s)
	}
}

// String returns the intent name.
func (i BuildIntent) String() string {
	return string(i)
}
