package approval

import "errors"

var (
	// ErrUnknownFormType is returned when a form type has no reviewer
	// sequence defined.
	ErrUnknownFormType = errors.New("unknown form type")

	// ErrNotAuthorized covers both a role that is not part of the required
	// sequence and a required role acting out of turn.
	ErrNotAuthorized = errors.New("role is not authorized to act on this form now")

	// ErrAlreadyApproved signals a second approve for a role that has
	// already signed. Callers use it to tell a retry from a race.
	ErrAlreadyApproved = errors.New("role has already approved this form")

	// ErrRemarksRequired is returned when a reject carries a blank remark.
	ErrRemarksRequired = errors.New("a remark is required when rejecting")

	// ErrConcurrentModification means the conditional update lost a race
	// and the caller should re-fetch before deciding to retry.
	ErrConcurrentModification = errors.New("form was modified concurrently")
)
