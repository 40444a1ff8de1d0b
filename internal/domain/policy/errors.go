package policy

import "errors"

var (
	ErrPolicyNotFound = errors.New("no active compensation policy for employee")
)
