package usecase

import (
	"errors"
	"strings"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ExternalServiceError indica que a planilha ou o email falharam durante o
// envio. O rascunho continua como draft e o usuário pode tentar de novo.
type ExternalServiceError struct {
	Services []string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return "Error al enviar el brief (" + strings.Join(e.Services, ", ") + "): " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// PersistenceError é uma falha de leitura ou escrita do rascunho. Nunca chega
// ao usuário: é registrada no log e o fluxo segue sem o rascunho.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return "erro de persistência (" + e.Op + " " + e.Key + "): " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

var ErrDraftNotFound = errors.New("rascunho não encontrado")

const (
	ServiceSheets = "google_sheets"
	ServiceEmail  = "email"
)
