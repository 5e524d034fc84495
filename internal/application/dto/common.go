package dto

// ErrorResponse cuerpo de error HTTP. Details lleva la lista de problemas de
// validación cuando aplica.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ProblemDTO problema de validación de un campo.
type ProblemDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
