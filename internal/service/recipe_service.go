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

type RecipeService interface {
	Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error)
	List(ctx context.Context) ([]dto.RecipeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipeService struct {
	repo        repository.RecipeRepository
	productRepo repository.ProductRepository
}

func NewRecipeService(repo repository.RecipeRepository, productRepo repository.ProductRepository) RecipeService {
	return &recipeService{repo: repo, productRepo: productRepo}
}

func recipeToResponse(r *model.Recipe) *dto.RecipeResponse {
	ingredients := make([]dto.IngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		name := ""
		if ing.Product != nil {
			name = ing.Product.Name
		}
		ingredients = append(ingredients, dto.IngredientResponse{
			ProductID:   ing.ProductID.String(),
			ProductName: name,
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
		})
	}
	return &dto.RecipeResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		Instructions: r.Instructions,
		Tags:         splitTags(r.Tags),
		Ingredients:  ingredients,
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
}

// buildIngredients turns validated requests into rows, rejecting unknown and
// repeated products.
func (s *recipeService) buildIngredients(ctx context.Context, reqs []dto.IngredientRequest) ([]model.RecipeIngredient, error) {
	ids := make([]uuid.UUID, 0, len(reqs))
	seen := make(map[uuid.UUID]struct{}, len(reqs))
	for i, req := range reqs {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, apperror.NewInvalidSelection(i, req.ProductID, "malformed product id")
		}
		if _, dup := seen[id]; dup {
			return nil, apperror.NewInvalidSelection(i, req.ProductID, "product listed more than once")
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load ingredient products: %w", err)
	}
	known := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		known[p.ID] = p
	}

	out := make([]model.RecipeIngredient, 0, len(reqs))
	for i, req := range reqs {
		p, ok := known[ids[i]]
		if !ok {
			return nil, apperror.NewInvalidSelection(i, req.ProductID, "unknown product")
		}
		unit := strings.TrimSpace(req.Unit)
		if unit == "" {
			unit = p.Unit
		}
		if unit == "" {
			unit = shopping.DefaultUnit
		}
		prod := p
		out = append(out, model.RecipeIngredient{
			ProductID: ids[i],
			Quantity:  req.Quantity,
			Unit:      unit,
			Product:   &prod,
		})
	}
	return out, nil
}

func (s *recipeService) Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	ingredients, err := s.buildIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}
	rec := &model.Recipe{
		Name:         strings.TrimSpace(req.Name),
		Instructions: req.Instructions,
		Tags:         joinTags(req.Tags),
		Ingredients:  ingredients,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipeToResponse(rec), nil
}

func (s *recipeService) Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "recipe "+id.String())
	}
	return recipeToResponse(rec), nil
}

func (s *recipeService) List(ctx context.Context) ([]dto.RecipeResponse, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	out := make([]dto.RecipeResponse, 0, len(recs))
	for i := range recs {
		out = append(out, *recipeToResponse(&recs[i]))
	}
	return out, nil
}

func (s *recipeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "recipe "+id.String())
	}
	if req.Name != nil {
		rec.Name = strings.TrimSpace(*req.Name)
	}
	if req.Instructions != nil {
		rec.Instructions = *req.Instructions
	}
	if req.Tags != nil {
		rec.Tags = joinTags(*req.Tags)
	}
	if req.Ingredients != nil {
		ingredients, err := s.buildIngredients(ctx, *req.Ingredients)
		if err != nil {
			return nil, err
		}
		rec.Ingredients = ingredients
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return recipeToResponse(rec), nil
}

func (s *recipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, "recipe "+id.String())
	}
	return s.repo.Delete(ctx, id)
}
