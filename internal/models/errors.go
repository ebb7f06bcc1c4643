package models

import "errors"

var (
	ErrInvalidExtension = errors.New("Only .step or .stp files are allowed")
	ErrInvalidFilename  = errors.New("Invalid filename")
	ErrMissingFile      = errors.New("file field is required")
)
