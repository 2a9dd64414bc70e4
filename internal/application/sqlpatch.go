package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"arbfix/internal/domain"
	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/input"
	"arbfix/internal/ports/output"
)

var _ input.SQLPatchUseCase = (*SQLPatchService)(nil)

// SQLPatchService pushes patches through a list of executors, first success
// wins, and archives every patch no executor applied.
type SQLPatchService struct {
	executors []output.SQLExecutor
	archive   output.PatchArchive
	log       *zap.Logger
}

func NewSQLPatchService(executors []output.SQLExecutor, archive output.PatchArchive, log *zap.Logger) *SQLPatchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLPatchService{executors: executors, archive: archive, log: log}
}

// Submit attempts every patch against the executors in order, then archives
// the ones left unapplied. Remote failures are reported in the results, the
// returned error is only set for invalid input or a cancelled context.
func (s *SQLPatchService) Submit(ctx context.Context, patches []entities.SQLPatch) ([]entities.SubmitResult, error) {
	for _, p := range patches {
		if strings.TrimSpace(p.SQL) == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrEmptyPatch, p.Name)
		}
	}

	results := make([]entities.SubmitResult, 0, len(patches))
	for _, p := range patches {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.apply(ctx, p))
	}

	for i := range results {
		if results[i].Applied || s.archive == nil {
			continue
		}
		path, err := s.archive.Store(results[i].Patch, i)
		if err != nil {
			s.log.Error("could not archive SQL patch", zap.String("patch", results[i].Patch.Name), zap.Error(err))
			results[i].FallbackErr = err
			continue
		}
		s.log.Info("SQL patch saved for manual execution", zap.String("patch", results[i].Patch.Name), zap.String("path", path))
		results[i].FallbackPath = path
	}
	return results, nil
}

func (s *SQLPatchService) apply(ctx context.Context, p entities.SQLPatch) entities.SubmitResult {
	res := entities.SubmitResult{Patch: p}
	for _, ex := range s.executors {
		a := ex.Exec(ctx, p.SQL)
		res.Attempts = append(res.Attempts, a)
		if a.OK() {
			s.log.Info("SQL patch applied", zap.String("patch", p.Name), zap.String("endpoint", a.Endpoint))
			res.Applied = true
			res.AppliedBy = a.Endpoint
			return res
		}
		s.log.Warn("SQL endpoint rejected patch",
			zap.String("patch", p.Name),
			zap.String("endpoint", a.Endpoint),
			zap.Int("status", a.StatusCode),
			zap.Error(a.Err),
		)
	}
	if len(s.executors) == 0 {
		res.Attempts = append(res.Attempts, entities.Attempt{Err: domain.ErrNoEndpoint})
	}
	return res
}
