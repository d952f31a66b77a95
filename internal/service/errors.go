package service

import "errors"

// Sentinel error service layer. Dipetakan ke status HTTP oleh
// serverutils.ErrorHandlerMiddleware.
var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document has no extractable text")
	ErrEmptyPrompt         = errors.New("prompt is required when no files are given")
)
