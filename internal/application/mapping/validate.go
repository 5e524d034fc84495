package mapping

import (
	"strings"

	"github.com/jhoicas/docengine/internal/domain/entity"
)

// Problem campo requerido ausente.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lista completa de campos requeridos ausentes.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Field + ": " + p.Message
	}
	return "mapping: datos incompletos: " + strings.Join(msgs, "; ")
}

// ValidateDocumentData comprueba que el registro tenga número (o id) y un
// cliente identificable (nombre o empresa). Reúne todos los problemas antes de
// devolver el error.
func ValidateDocumentData(rec *entity.BusinessRecord) error {
	if rec == nil {
		return &ValidationError{Problems: []Problem{{Field: "record", Message: "registro requerido"}}}
	}
	var problems []Problem
	if strings.TrimSpace(rec.Number) == "" && strings.TrimSpace(rec.ID) == "" {
		problems = append(problems, Problem{Field: "document.number", Message: "número de documento requerido"})
	}
	if !rec.Customer.HasIdentity() {
		problems = append(problems, Problem{Field: "customer.name", Message: "nombre o empresa del cliente requerido"})
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
