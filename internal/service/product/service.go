package product

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type Service struct {
	repo productRepo
}

type productRepo interface {
	List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productrepo.CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productrepo.CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

func New(repo productRepo) *Service {
	return &Service{repo: repo}
}

type UpsertInput struct {
	Name            string             `json:"name"`
	Brand           string             `json:"brand"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	PriceCents      int64              `json:"priceCents"`
	OfferPriceCents *int64             `json:"offerPriceCents,omitempty"`
	Images          []string           `json:"images"`
	SizeStocks      []domain.SizeStock `json:"sizeStocks"`
}

func (s *Service) List(ctx context.Context, category, search string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.ListFilter{
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in UpsertInput) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, toRepoInput(in))
}

func (s *Service) Update(ctx context.Context, id string, in UpsertInput) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, toRepoInput(in))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(in UpsertInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	if in.PriceCents <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if in.OfferPriceCents != nil && (*in.OfferPriceCents <= 0 || *in.OfferPriceCents >= in.PriceCents) {
		return fmt.Errorf("%w: offer price must be positive and below the regular price", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(in.SizeStocks))
	for _, ss := range in.SizeStocks {
		size := strings.TrimSpace(ss.Size)
		if size == "" {
			return fmt.Errorf("%w: size name required", domain.ErrValidation)
		}
		if seen[size] {
			return fmt.Errorf("%w: duplicate size %s", domain.ErrValidation, size)
		}
		seen[size] = true
		if ss.Stock < 0 {
			return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
		}
	}
	return nil
}

func toRepoInput(in UpsertInput) productrepo.CreateProductInput {
	return productrepo.CreateProductInput{
		Name:            strings.TrimSpace(in.Name),
		Brand:           strings.TrimSpace(in.Brand),
		Description:     in.Description,
		Category:        strings.TrimSpace(in.Category),
		PriceCents:      in.PriceCents,
		OfferPriceCents: in.OfferPriceCents,
		Images:          in.Images,
		SizeStocks:      in.SizeStocks,
	}
}
