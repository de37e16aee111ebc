package sheets

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrHeaderMismatch indica que a linha 1 da planilha não bate com os
	// cabeçalhos esperados. A lista só cresce no fim; divergência é recusada.
	ErrHeaderMismatch = errors.New("sheets: cabeçalhos da planilha divergentes")

	ErrUnauthorized = errors.New("sheets: credenciais inválidas")
	ErrForbidden    = errors.New("sheets: sem permissão na planilha")
	ErrNotFound     = errors.New("sheets: planilha não encontrada")
	ErrRateLimited  = errors.New("sheets: limite de requisições excedido")
)

// classify traduz os códigos do googleapi.Error para os erros do pacote,
// mantendo o erro original na cadeia.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w: %w", op, ErrUnauthorized, err)
		case http.StatusForbidden:
			return fmt.Errorf("%s: %w: %w", op, ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w: %w", op, ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
