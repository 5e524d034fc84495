package rendering

import (
	"errors"
	"fmt"
)

// Code clasificación de un fallo de renderizado.
type Code string

const (
	CodeTimeout      Code = "RENDER_TIMEOUT"
	CodeEncodeFailed Code = "ENCODE_FAILED"
	CodeEmptyOutput  Code = "EMPTY_OUTPUT"
	CodeCanceled     Code = "CANCELED"
	CodeInvalidMode  Code = "INVALID_MODE"
)

var (
	// ErrNoStore no hay almacenamiento configurado para el modo upload.
	ErrNoStore = errors.New("rendering: almacenamiento no configurado")
	// ErrNoViewer no hay visor configurado para el modo preview.
	ErrNoViewer = errors.New("rendering: visor no configurado")
)

// RenderError el documento no pudo producirse. No se reintenta.
type RenderError struct {
	Code  Code
	Cause error
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("rendering: %s", e.Code)
	}
	return fmt.Sprintf("rendering: %s: %v", e.Code, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// UploadError el documento se generó pero no pudo almacenarse.
type UploadError struct {
	Path  string
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("rendering: subir %s: %v", e.Path, e.Cause)
}

func (e *UploadError) Unwrap() error { return e.Cause }
