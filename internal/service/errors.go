package service

import (
	"fmt"

	"printshop/internal/apperrors"
)

var (
	ErrInvalidInput             = fmt.Errorf("%w: missing or invalid form fields", apperrors.ErrValidation)
	ErrDuplicateEmail           = fmt.Errorf("%w: an account with this email already exists", apperrors.ErrValidation)
	ErrDuplicateInstitutionalID = fmt.Errorf("%w: this institutional ID is already registered", apperrors.ErrValidation)
	ErrInvalidQuantity          = fmt.Errorf("%w: pages and copies must be positive", apperrors.ErrValidation)
	ErrTooManyCopies            = fmt.Errorf("%w: at most %d copies per job", apperrors.ErrValidation, MaxCopies)
	ErrInvalidStatus            = fmt.Errorf("%w: unknown job status", apperrors.ErrValidation)
	ErrIllegalTransition        = fmt.Errorf("%w: status change not allowed", apperrors.ErrValidation)
	ErrStatusConflict           = fmt.Errorf("%w: job was changed by someone else, reload and retry", apperrors.ErrValidation)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrAuth)
	ErrTooManyAttempts    = fmt.Errorf("%w: too many login attempts, try again later", apperrors.ErrAuth)
	ErrSessionInvalid     = fmt.Errorf("%w: session is no longer valid", apperrors.ErrAuth)

	ErrForbidden = fmt.Errorf("%w: you do not have permission for this action", apperrors.ErrAuthorization)

	ErrJobNotFound = fmt.Errorf("%w: print job not found", apperrors.ErrNotFound)
)
