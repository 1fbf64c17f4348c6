package item

import (
	"context"
	"strings"

	"github.com/pavalka/shareit/internal/pkg/page"
	"github.com/pavalka/shareit/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, actorID, id string, req UpdateRequest) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, p page.Page) ([]*Item, int, error)
	Search(ctx context.Context, text string, p page.Page) ([]*Item, int, error)
}

// UserFinder resolves user ids; user.Service satisfies it.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type service struct {
	repo  Repository
	users UserFinder
}

func NewService(repo Repository, users UserFinder) Service {
	return &service{
		repo:  repo,
		users: users,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyDescription
	}
	if req.Available == nil {
		return nil, ErrAvailabilityMissing
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Available:   *req.Available,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. Items of other owners are reported as
// not found rather than forbidden.
func (s *service) Update(ctx context.Context, actorID, id string, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrEmptyDescription
		}
		it.Description = strings.TrimSpace(*req.Description)
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, p page.Page) ([]*Item, int, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, Filter{OwnerID: ownerID}, p.WithSort(page.By("created_at", page.Asc)))
}

// Search looks for available items whose name or description contains text.
// Blank text matches nothing.
func (s *service) Search(ctx context.Context, text string, p page.Page) ([]*Item, int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, 0, nil
	}
	return s.repo.List(ctx, Filter{Text: text, OnlyAvailable: true}, p.WithSort(page.By("created_at", page.Asc)))
}
