package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"arbfix/internal/domain"
	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/input"
	"arbfix/internal/ports/output"
)

var _ input.LocalizationUseCase = (*LocalizationService)(nil)

// LocalizationService rewrites one key across the locale documents of a
// translation table.
type LocalizationService struct {
	store output.LocaleDocumentStore
	log   *zap.Logger
}

func NewLocalizationService(store output.LocaleDocumentStore, log *zap.Logger) *LocalizationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalizationService{store: store, log: log}
}

// UpdateKey processes every entry of table in order. Per-file failures are
// recorded in the report and never stop the run; only context cancellation
// does, in which case the partial report is returned with the context error.
func (s *LocalizationService) UpdateKey(ctx context.Context, dir string, table entities.TranslationTable, dryRun bool) (*entities.Report, error) {
	if table.Key == "" {
		return nil, fmt.Errorf("%w: target key is empty", domain.ErrInvalidTable)
	}

	report := &entities.Report{Key: table.Key, DryRun: dryRun}
	for _, entry := range table.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		o := s.updateFile(filepath.Join(dir, entry.File), table.Key, entry, dryRun)
		s.logOutcome(o)
		report.Add(o)
	}
	return report, nil
}

func (s *LocalizationService) updateFile(path, key string, entry entities.Entry, dryRun bool) entities.Outcome {
	o := entities.Outcome{File: entry.File, NewValue: entry.Value}

	doc, err := s.store.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.Status = entities.StatusMissingFile
			return o
		}
		o.Status = entities.StatusError
		o.Err = err
		return o
	}

	old, ok := doc.Lookup(key)
	if !ok {
		o.Status = entities.StatusMissingKey
		return o
	}
	o.OldValue = old

	if err := doc.Set(key, entry.Value); err != nil {
		o.Status = entities.StatusError
		o.Err = err
		return o
	}
	if !dryRun {
		if err := s.store.Save(path, doc); err != nil {
			o.Status = entities.StatusError
			o.Err = fmt.Errorf("save %s: %w", entry.File, err)
			return o
		}
	}
	o.Status = entities.StatusUpdated
	return o
}

func (s *LocalizationService) logOutcome(o entities.Outcome) {
	fields := []zap.Field{zap.String("file", o.File), zap.Stringer("status", o.Status)}
	switch o.Status {
	case entities.StatusUpdated:
		s.log.Debug("locale file updated", append(fields, zap.String("old", o.OldValue), zap.String("new", o.NewValue))...)
	case entities.StatusError:
		s.log.Warn("locale file failed", append(fields, zap.Error(o.Err))...)
	default:
		s.log.Debug("locale file skipped", fields...)
	}
}
