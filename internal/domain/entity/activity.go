package entity

import "time"

// ActivityLogEntry entrada de auditoría append-only. El flujo principal nunca la lee;
// solo las vistas de reporte.
type ActivityLogEntry struct {
	ID          string
	Action      string
	Description string
	Entity      string // "sale", "product", "user", ...
	EntityID    string
	UserID      string
	IPAddress   string
	CreatedAt   time.Time
}
