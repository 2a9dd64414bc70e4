package input

import (
	"context"

	"arbfix/internal/domain/entities"
)

type SQLPatchUseCase interface {
	Submit(ctx context.Context, patches []entities.SQLPatch) ([]entities.SubmitResult, error)
}
