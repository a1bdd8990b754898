package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidPath   = errors.New("invalid path")
	ErrSourceMissing = errors.New("source vault missing")
	ErrTargetExists  = errors.New("target vault already exists")
	ErrBackupFailed  = errors.New("backup failed")
)
