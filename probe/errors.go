package probe

import "errors"

var (
	// ErrProbePanic indicates a probe panicked and was recovered.
	ErrProbePanic = errors.New("probe: check panicked")

	// ErrProbeTimeout indicates a probe exceeded the batch deadline.
	ErrProbeTimeout = errors.New("probe: check timed out")

	// ErrInvalidName indicates a probe name a host rejected, e.g. empty.
	// The registry itself does not enforce naming rules.
	ErrInvalidName = errors.New("probe: invalid probe name")

	// ErrNoProbes indicates an empty registry to hosts that treat
	// vacuous health as a configuration error.
	ErrNoProbes = errors.New("probe: no probes registered")
)
