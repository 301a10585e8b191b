package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/google/uuid"
)

type assigneeService struct {
	assignees repository.AssigneeRepo
}

func NewAssigneeService(assignees repository.AssigneeRepo) AssigneeService {
	return &assigneeService{assignees: assignees}
}

// Create stores a new assignee. An empty key is derived from the name, or
// generated when the name has no usable characters.
func (s *assigneeService) Create(ctx context.Context, a *domain.Assignee) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if a.Key == "" {
		a.Key = keyFromName(a.Name)
	}
	a.Key = strings.ToLower(strings.TrimSpace(a.Key))
	if a.Role == "" {
		a.Role = domain.RoleMember
	}
	if a.Role != domain.RoleMember && a.Role != domain.RoleClient {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, a.Role)
	}
	if err := validateCapacity(a.DailyCapacityHours); err != nil {
		return err
	}
	return s.assignees.Create(ctx, a)
}

func (s *assigneeService) GetByKey(ctx context.Context, key string) (*domain.Assignee, error) {
	return s.assignees.GetByKey(ctx, key)
}

func (s *assigneeService) List(ctx context.Context) ([]*domain.Assignee, error) {
	return s.assignees.List(ctx)
}

// SetCapacity stores hours as the daily capacity; nil restores the default.
func (s *assigneeService) SetCapacity(ctx context.Context, key string, hours *float64) error {
	if hours != nil {
		if err := validateCapacity(*hours); err != nil {
			return err
		}
	}
	return s.assignees.SetCapacity(ctx, key, hours)
}

// validateCapacity rejects values no one means to type. Zero is accepted and
// clamped at scheduling time.
func validateCapacity(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 || hours > 24 {
		return fmt.Errorf("%w: daily capacity must be between 0 and 24 hours", ErrInvalidInput)
	}
	return nil
}

func keyFromName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	key := strings.TrimSuffix(b.String(), "-")
	if key == "" {
		key = uuid.NewString()[:8]
	}
	return key
}
