package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	recorder audit.Sink
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, recorder audit.Sink) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, recorder: recorder}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(actor *entity.User, ip string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Add Category",
		Description: fmt.Sprintf("Categoría %s creada", category.Name),
		Entity:      "category",
		EntityID:    category.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return toCategoryResponse(category), nil
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Search busca categorías por nombre.
func (uc *CategoryUseCase) Search(query string) ([]dto.CategoryResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	categories, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(actor *entity.User, ip, id string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Update Category",
		Description: fmt.Sprintf("Categoría %s actualizada", category.Name),
		Entity:      "category",
		EntityID:    category.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(actor *entity.User, ip, id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Delete Category",
		Description: fmt.Sprintf("Categoría %s eliminada", category.Name),
		Entity:      "category",
		EntityID:    category.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
