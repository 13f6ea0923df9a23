package sales

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// buildSaleResponse arma el DTO de una venta resolviendo cada línea a su producto
// (y la categoría del producto cuando existe). Un producto ya eliminado del catálogo
// deja la línea con Product nil pero conserva la referencia.
func buildSaleResponse(sale *entity.Sale, productsByID map[string]*entity.Product, categoryRepo repository.CategoryRepository) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         sale.ID,
		SaleNumber: sale.SaleNumber,
		Customer: dto.SaleCustomerDTO{
			Name:  sale.Customer.Name,
			Phone: sale.Customer.Phone,
			Email: sale.Customer.Email,
		},
		Items:         make([]dto.SaleItemResponse, 0, len(sale.Items)),
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		PaymentStatus: sale.PaymentStatus,
		Status:        sale.Status,
		CashierID:     sale.CashierID,
		Notes:         sale.Notes,
		CreatedAt:     sale.CreatedAt,
	}

	categories := make(map[string]*entity.Category)
	for _, item := range sale.Items {
		line := dto.SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		if product := productsByID[item.ProductID]; product != nil {
			line.Product = toProductResponse(product, resolveCategory(product.CategoryID, categories, categoryRepo))
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}

func resolveCategory(id string, cache map[string]*entity.Category, repo repository.CategoryRepository) *entity.Category {
	if id == "" || repo == nil {
		return nil
	}
	if c, ok := cache[id]; ok {
		return c
	}
	c, err := repo.GetByID(id)
	if err != nil {
		c = nil
	}
	cache[id] = c
	return c
}

func toProductResponse(p *entity.Product, c *entity.Category) *dto.ProductResponse {
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
	if c != nil {
		resp.Category = &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	}
	return resp
}
