package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/loadboard/internal/db"
	"github.com/alexanderramin/loadboard/internal/importer"
	"github.com/alexanderramin/loadboard/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

// NewImportService builds the bulk importer. Every import runs in a single
// transaction: either all rows land or none do.
func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	batch := importer.Convert(schema)
	now := time.Now().UTC().Truncate(time.Second)

	result := &ImportResult{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		assignees := repository.NewSQLiteAssigneeRepo(tx)
		tasks := repository.NewSQLiteTaskRepo(tx)

		for _, a := range batch.Assignees {
			_, err := assignees.GetByKey(ctx, a.Key)
			switch {
			case err == nil:
				result.ExistingAssignees = append(result.ExistingAssignees, a.Key)
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
			if err := assignees.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assignee %q: %w", a.Key, err)
			}
			result.AssigneeCount++
		}

		for i, t := range batch.Tasks {
			if t.AssigneeKey != "" {
				if _, err := assignees.GetByKey(ctx, t.AssigneeKey); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return fmt.Errorf("tasks[%d]: %q: %w", i, t.AssigneeKey, ErrAssigneeNotFound)
					}
					return err
				}
			}
			t.CreatedAt, t.UpdatedAt = now, now
			if err := tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
			result.TaskIDs = append(result.TaskIDs, t.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
