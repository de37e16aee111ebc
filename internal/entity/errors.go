package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBriefCompleted = errors.New("el brief ya fue enviado")
	ErrUnknownStep    = errors.New("paso desconocido")
	ErrSchemaMismatch = errors.New("brief guardado incompatible con el esquema actual")
)

// FieldError aponta um campo inválido no formato "stepN.campo".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError é devolvido por ApplyStep quando os dados do passo violam
// as regras de obrigatoriedade, enumeração ou tamanho mínimo.
type ValidationError struct {
	Step   int
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("paso %d inválido: %s", e.Step, joinFieldErrors(e.Fields))
}

func (e *ValidationError) FieldNames() []string {
	return fieldNames(e.Fields)
}

// IncompleteBriefError lista os campos obrigatórios em falta ao tentar
// concluir o brief.
type IncompleteBriefError struct {
	Missing []FieldError
}

func (e *IncompleteBriefError) Error() string {
	return "brief incompleto: " + joinFieldErrors(e.Missing)
}

func (e *IncompleteBriefError) FieldNames() []string {
	return fieldNames(e.Missing)
}

// Steps devolve os números dos passos com pendências, sem repetição.
func (e *IncompleteBriefError) Steps() []int {
	var steps []int
	seen := make(map[int]bool)
	for _, f := range e.Missing {
		var n int
		if _, err := fmt.Sscanf(f.Field, "step%d.", &n); err != nil || seen[n] {
			continue
		}
		seen[n] = true
		steps = append(steps, n)
	}
	return steps
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func joinFieldErrors(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Error())
	}
	return strings.Join(parts, ", ")
}
