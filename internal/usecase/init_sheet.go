package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
)

type InitSheetUseCase struct {
	Sheet SheetInitializer
	Log   *logger.Logger
}

func NewInitSheetUseCase(sheet SheetInitializer, log *logger.Logger) *InitSheetUseCase {
	return &InitSheetUseCase{Sheet: sheet, Log: log}
}

func (uc *InitSheetUseCase) Execute(ctx context.Context) (*InitSheetOutput, error) {
	if uc.Sheet == nil {
		return nil, &DomainError{Code: "SHEETS_NOT_CONFIGURED", Message: "Google Sheets ID no configurado"}
	}

	headers := entity.SheetHeaders()
	if err := uc.Sheet.InitSheet(ctx, headers); err != nil {
		return nil, &ExternalServiceError{
			Services: []string{ServiceSheets},
			Err:      fmt.Errorf("erro ao inicializar planilha: %w", err),
		}
	}

	uc.Log.Info("📊 planilha inicializada", "columns", len(headers), "version", entity.HeaderVersion)
	return &InitSheetOutput{
		Columns: len(headers),
		Message: "Google Sheets inicializado exitosamente",
	}, nil
}
