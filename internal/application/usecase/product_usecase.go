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

// ProductUseCase casos de uso CRUD del catálogo. La cantidad autoritativa se maneja
// vía libro de stock; Quantity aquí es el contador denormalizado.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	recorder     audit.Sink
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, recorder audit.Sink) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, recorder: recorder}
}

// Create crea un producto nuevo. La categoría debe existir.
func (uc *ProductUseCase) Create(actor *entity.User, ip string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		SupplierID:  in.Supplier,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Add Product",
		Description: fmt.Sprintf("Producto %s agregado", product.Name),
		Entity:      "product",
		EntityID:    product.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto por ID con su categoría resuelta.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product), nil
}

// List devuelve productos + total.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products)), TotalProduct: total}
	for _, p := range products {
		resp.Products = append(resp.Products, *uc.toResponse(p))
	}
	return resp, nil
}

// Search busca por nombre o descripción (insensible a mayúsculas).
func (uc *ProductUseCase) Search(query string) ([]dto.ProductResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *uc.toResponse(p))
	}
	return out, nil
}

// TopByQuantity los productos con mayor contador (para el dashboard).
func (uc *ProductUseCase) TopByQuantity(limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	products, err := uc.repo.TopByQuantity(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *uc.toResponse(p))
	}
	return out, nil
}

// Update actualiza un producto. La cantidad NO se toca aquí (ajustes vía inventario).
func (uc *ProductUseCase) Update(actor *entity.User, ip, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		category, err := uc.categoryRepo.GetByID(*in.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Supplier != nil {
		product.SupplierID = *in.Supplier
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Update Product",
		Description: fmt.Sprintf("Producto %q actualizado", product.Name),
		Entity:      "product",
		EntityID:    product.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return uc.toResponse(product), nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(actor *entity.User, ip, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Delete Product",
		Description: fmt.Sprintf("Producto %s eliminado", product.Name),
		Entity:      "product",
		EntityID:    product.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SupplierID:  p.SupplierID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryID != "" {
		if c, err := uc.categoryRepo.GetByID(p.CategoryID); err == nil && c != nil {
			resp.Category = &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
		}
	}
	return resp
}
