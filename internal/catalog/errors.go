package catalog

import "errors"

var (
	ErrValidation       = errors.New("invalid input")
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationExists   = errors.New("location already exists")
	ErrLocationMissing  = errors.New("location does not exist")
	ErrProjectNotFound  = errors.New("project not found")
	ErrImageNotFound    = errors.New("image not found")
)
