package migrations

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Policy controls how data-copy steps inside migrations treat failure.
// Schema DDL always fails hard; only the documented backfill steps consult
// the policy.
type Policy string

const (
	// PolicyStrict aborts the migration when a data-copy step fails.
	PolicyStrict Policy = "strict"
	// PolicyBestEffort logs a failed data-copy step and lets the
	// surrounding schema changes proceed. This reproduces the historical
	// behavior of the sales-order normalization.
	PolicyBestEffort Policy = "best-effort"
)

// ParsePolicy converts a configuration string into a Policy
func ParsePolicy(v string) (Policy, error) {
	switch Policy(v) {
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyBestEffort:
		return PolicyBestEffort, nil
	}
	return "", errors.Errorf("invalid migration policy %q (want %q or %q)", v, PolicyStrict, PolicyBestEffort)
}

// applyPolicy resolves a data-copy step error against the configured policy
func applyPolicy(policy Policy, step string, err error) error {
	if err == nil {
		return nil
	}
	if policy == PolicyBestEffort {
		log.Warn().Err(err).Str("step", step).Msg("Data copy step failed, continuing per best-effort policy")
		return nil
	}
	return errors.Wrapf(err, "data copy step %s failed", step)
}
