package dto

import "time"

// UpsertInventoryRequest fija la cantidad autoritativa de un producto (alta o corrección).
type UpsertInventoryRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int64  `json:"quantity" validate:"min=0"`
}

// StockRecordResponse registro del libro de stock; status siempre derivado de quantity.
type StockRecordResponse struct {
	ProductID string    `json:"product"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventoryListResponse listado del libro de stock.
type InventoryListResponse struct {
	Success   bool                  `json:"success"`
	Inventory []StockRecordResponse `json:"inventory"`
	Total     int                   `json:"total"`
}

// ActivityEntryResponse entrada de auditoría para vistas de reporte.
type ActivityEntryResponse struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Entity      string    `json:"entity"`
	EntityID    string    `json:"entityId,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ActivityListResponse listado de actividad reciente.
type ActivityListResponse struct {
	Success    bool                    `json:"success"`
	Activities []ActivityEntryResponse `json:"activities"`
	Total      int                     `json:"total"`
}
