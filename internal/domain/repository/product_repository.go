package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity reemplaza el contador denormalizado (no la cantidad autoritativa).
	UpdateQuantity(productID string, quantity int64) error
	// AdjustQuantity suma delta al contador, con piso en cero (contador de conveniencia).
	AdjustQuantity(productID string, delta int64) error
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int64, error)
	Search(query string) ([]*entity.Product, error)
	TopByQuantity(limit int) ([]*entity.Product, error)
	Delete(id string) error
}
