package service

import (
	"context"
	"fmt"

	"docregistro/internal/model"
	"docregistro/internal/repository"
)

// AssignmentPolicy decides which catalog entries receive an assignment.
type AssignmentPolicy string

const (
	// AssignAlways attaches an assignment to every entry.
	AssignAlways AssignmentPolicy = "always"
	// AssignAlternate attaches one to even-indexed entries only; odd entries carry nulls.
	AssignAlternate AssignmentPolicy = "alternate"
)

// ParseAssignmentPolicy maps a config value onto a policy. Empty means AssignAlways.
func ParseAssignmentPolicy(s string) (AssignmentPolicy, error) {
	switch AssignmentPolicy(s) {
	case "", AssignAlways:
		return AssignAlways, nil
	case AssignAlternate:
		return AssignAlternate, nil
	default:
		return "", fmt.Errorf("unknown assignment policy %q", s)
	}
}

// CatalogService lists the document catalog for a category.
type CatalogService interface {
	// List returns every definition with its assignment, in declaration order.
	// categoryID must be non-empty; it is not used to filter.
	List(ctx context.Context, categoryID string) ([]model.CatalogEntry, error)
}

type catalogService struct {
	repo   repository.CatalogRepository
	policy AssignmentPolicy
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(repo repository.CatalogRepository, policy AssignmentPolicy) CatalogService {
	if policy == "" {
		policy = AssignAlways
	}
	return &catalogService{repo: repo, policy: policy}
}

func (s *catalogService) List(ctx context.Context, categoryID string) ([]model.CatalogEntry, error) {
	if categoryID == "" {
		return nil, ErrMissingParameter
	}
	defs, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}

	entries := make([]model.CatalogEntry, 0, len(defs))
	for i, d := range defs {
		entry := model.CatalogEntry{
			DocumentDefinition: d,
			DocumentAssignment: model.DocumentAssignment{DefinitionID: d.ID},
		}
		if s.policy == AssignAlways || i%2 == 0 {
			a, err := s.repo.Assign(ctx, d.ID)
			if err != nil {
				return nil, fmt.Errorf("assign definition %d: %w", d.ID, err)
			}
			entry.DocumentAssignment = a
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
