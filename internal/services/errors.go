package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrUpstream      = errors.New("upstream api error")
	ErrDecode        = errors.New("decode error")
)

// RunStatus classifies how a transfer run ended for history and exit codes.
type RunStatus string

const (
	RunCompleted   RunStatus = "completed"
	RunPartial     RunStatus = "partial"
	RunFetchFailed RunStatus = "fetch_failed"
	RunInvalid     RunStatus = "invalid"
	RunFailed      RunStatus = "failed"
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUpstream
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps the error returned by a run, together with its write tallies,
// to the status recorded for that run.
func Classify(err error, attempted, succeeded int) RunStatus {
	switch {
	case err == nil && succeeded == attempted:
		return RunCompleted
	case err == nil:
		return RunPartial
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return RunInvalid
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrDecode):
		return RunFetchFailed
	default:
		return RunFailed
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
