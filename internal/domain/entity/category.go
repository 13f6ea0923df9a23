package entity

import "time"

// Category agrupa productos. Referencia simple desde Product.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
