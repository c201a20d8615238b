package service

import (
	"context"
	"fmt"
	"strings"

	"cookncart/internal/apperror"
	"cookncart/internal/dto"
	"cookncart/internal/model"
	"cookncart/internal/repository"
	"cookncart/internal/shopping"

	"github.com/google/uuid"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	// Delete refuses products still referenced by a shopping list or recipe.
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	listRepo   repository.ShoppingListRepository
	recipeRepo repository.RecipeRepository
}

func NewProductService(repo repository.ProductRepository, listRepo repository.ShoppingListRepository, recipeRepo repository.RecipeRepository) ProductService {
	return &productService{repo: repo, listRepo: listRepo, recipeRepo: recipeRepo}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Unit:         p.Unit,
		PricePerUnit: p.PricePerUnit,
		Category:     p.Category,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func normalizeProductUnit(unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shopping.DefaultUnit
	}
	return unit
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	p := &model.Product{
		Name:         strings.TrimSpace(req.Name),
		Unit:         normalizeProductUnit(req.Unit),
		PricePerUnit: req.PricePerUnit,
		Category:     strings.TrimSpace(req.Category),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product "+id.String())
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pages,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product "+id.String())
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Unit != nil {
		p.Unit = normalizeProductUnit(*req.Unit)
	}
	if req.PricePerUnit != nil {
		if req.PricePerUnit.IsNegative() {
			return nil, apperror.NewValidation(map[string]string{"PricePerUnit": "gte"})
		}
		p.PricePerUnit = *req.PricePerUnit
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, "product "+id.String())
	}
	if s.listRepo != nil {
		n, err := s.listRepo.CountItemsByProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("count list items: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("product is on %d shopping list(s): %w", n, apperror.ErrConflict)
		}
	}
	if s.recipeRepo != nil {
		n, err := s.recipeRepo.CountIngredientsByProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("count recipe ingredients: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("product is used by %d recipe(s): %w", n, apperror.ErrConflict)
		}
	}
	return s.repo.Delete(ctx, id)
}
