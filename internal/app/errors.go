package app

import "github.com/joelmoss/tfx/internal/errs"

// Re-export errors for convenience.
var (
	ErrArgument               = errs.ErrArgument
	ErrTool                   = errs.ErrTool
	ErrToolNotFound           = errs.ErrToolNotFound
	ErrToolVersion            = errs.ErrToolVersion
	ErrWorkspaceNotDetermined = errs.ErrWorkspaceNotDetermined
	ErrEulaNotAccepted        = errs.ErrEulaNotAccepted
	ErrAuthentication         = errs.ErrAuthentication
)
