package input

import (
	"context"

	"arbfix/internal/domain/entities"
)

type LocalizationUseCase interface {
	UpdateKey(ctx context.Context, dir string, table entities.TranslationTable, dryRun bool) (*entities.Report, error)
}
