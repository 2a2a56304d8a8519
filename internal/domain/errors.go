package domain

import "errors"

var (
	// ErrInvalidLanguage is returned when a batch job names an unsupported language.
	ErrInvalidLanguage = errors.New("invalid or unsupported language")

	// ErrLanguageMismatch describes a batch job whose language does not
	// match the language this worker instance was configured for. No code
	// path returns it: POST /execute evaluates any supported language a
	// job names, whatever the configured language is.
	ErrLanguageMismatch = errors.New("job language does not match worker's configured language")

	// ErrEmptySourceCode is returned when source code is empty.
	ErrEmptySourceCode = errors.New("source code cannot be empty")

	// ErrNoTestCases is returned when a batch job carries zero test cases.
	ErrNoTestCases = errors.New("batch job must contain at least one test case")

	// ErrBlobNotFound is returned by the blob fetch collaborator when a
	// key does not exist, distinct from other fetch failures (spec.md §6).
	ErrBlobNotFound = errors.New("blob not found")
)
