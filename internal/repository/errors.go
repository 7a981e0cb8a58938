package repository

import (
	"errors"

	"github.com/aws/smithy-go"
)

var (
	// ErrNotFound indica que o recurso remoto não existe.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists indica que o recurso remoto já existe.
	ErrAlreadyExists = errors.New("resource already exists")
)

// isAPIErrorCode verifica o código de erro smithy APIError
func isAPIErrorCode(err error, codes ...string) bool {
	code := ErrorCode(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// ErrorCode extrai o código AWS de um erro, ou "" quando não é um APIError.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// classified liga o erro AWS original a um sentinel do repositório.
type classified struct {
	kind error
	err  error
}

func (e *classified) Error() string { return e.err.Error() }

func (e *classified) Unwrap() []error { return []error{e.kind, e.err} }

func classify(kind, err error) error {
	return &classified{kind: kind, err: err}
}
