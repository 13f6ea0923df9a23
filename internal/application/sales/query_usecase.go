package sales

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// QueryUseCase consultas de ventas: listado paginado, detalle, resumen del día y estadísticas.
type QueryUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListInput parámetros del listado (página 1-based).
type ListInput struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
}

// List devuelve la página solicitada con metadatos de paginación.
func (uc *QueryUseCase) List(ctx context.Context, in ListInput) (*dto.SaleListResponse, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	filter := repository.SaleFilter{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    in.Status,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	sales, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.saleRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	resp := &dto.SaleListResponse{
		Success:     true,
		Sales:       make([]dto.SaleResponse, 0, len(sales)),
		TotalPages:  totalPages,
		CurrentPage: page,
		Total:       total,
	}
	cache := make(map[string]*entity.Product)
	for _, s := range sales {
		resp.Sales = append(resp.Sales, *buildSaleResponse(s, uc.resolveProducts(s, cache), uc.categoryRepo))
	}
	return resp, nil
}

// Get devuelve una venta por ID con productos resueltos.
func (uc *QueryUseCase) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return buildSaleResponse(sale, uc.resolveProducts(sale, make(map[string]*entity.Product)), uc.categoryRepo), nil
}

// Today resumen del día: ventas completadas y pagadas desde la medianoche local.
func (uc *QueryUseCase) Today(ctx context.Context) (*dto.TodaySalesResponse, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	sales, err := uc.saleRepo.ListPaidCompletedBetween(start, end)
	if err != nil {
		return nil, err
	}
	resp := &dto.TodaySalesResponse{
		Success:           true,
		TotalTransactions: len(sales),
		Sales:             make([]dto.SaleResponse, 0, len(sales)),
	}
	cache := make(map[string]*entity.Product)
	for _, s := range sales {
		resp.TotalSales = resp.TotalSales.Add(s.Total)
		resp.Sales = append(resp.Sales, *buildSaleResponse(s, uc.resolveProducts(s, cache), uc.categoryRepo))
	}
	return resp, nil
}

// Stats estadísticas agregadas del período: ingresos, transacciones y top 5 productos.
func (uc *QueryUseCase) Stats(ctx context.Context, period string) (*dto.SalesStatsResponse, error) {
	now := time.Now()
	var start time.Time
	switch period {
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		period = "day"
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	sales, err := uc.saleRepo.ListPaidCompletedBetween(start, now.Add(time.Second))
	if err != nil {
		return nil, err
	}

	type agg struct {
		quantity int64
		revenue  decimal.Decimal
	}
	byProduct := make(map[string]*agg)
	cache := make(map[string]*entity.Product)
	resp := &dto.SalesStatsResponse{Success: true, Period: period, TotalTransactions: len(sales)}
	for _, s := range sales {
		resp.TotalRevenue = resp.TotalRevenue.Add(s.Total)
		for _, item := range s.Items {
			name := item.ProductID
			if p := uc.lookupProduct(item.ProductID, cache); p != nil {
				name = p.Name
			}
			a, ok := byProduct[name]
			if !ok {
				a = &agg{}
				byProduct[name] = a
			}
			a.quantity += item.Quantity
			a.revenue = a.revenue.Add(item.LineTotal)
		}
	}

	top := make([]dto.TopProductStat, 0, len(byProduct))
	for name, a := range byProduct {
		top = append(top, dto.TopProductStat{Name: name, Quantity: a.quantity, Revenue: a.revenue})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > 5 {
		top = top[:5]
	}
	resp.TopProducts = top
	return resp, nil
}

func (uc *QueryUseCase) resolveProducts(sale *entity.Sale, cache map[string]*entity.Product) map[string]*entity.Product {
	for _, item := range sale.Items {
		uc.lookupProduct(item.ProductID, cache)
	}
	return cache
}

func (uc *QueryUseCase) lookupProduct(id string, cache map[string]*entity.Product) *entity.Product {
	if p, ok := cache[id]; ok {
		return p
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		p = nil
	}
	cache[id] = p
	return p
}
