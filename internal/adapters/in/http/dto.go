package http

import (
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrder struct {
	CreatedBy string `json:"createdBy"`
}

type NewItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type NewProduct struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Order struct {
	ID        int64     `json:"id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

type Item struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type HistoryEntry struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	CreatedAt time.Time       `json:"createdAt"`
	Kind      string          `json:"kind"`
	Payload   history.Payload `json:"payload"`
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:        o.ID(),
		State:     o.State().String(),
		CreatedAt: o.CreatedAt(),
		CreatedBy: o.CreatedBy(),
	}
}

func orderFromResponse(o queries.OrderResponse) Order {
	return Order{
		ID:        o.ID,
		State:     o.State,
		CreatedAt: o.CreatedAt,
		CreatedBy: o.CreatedBy,
	}
}

func itemFromDomain(i *order.Item) Item {
	return Item{
		ID:        i.ID(),
		OrderID:   i.OrderID(),
		ProductID: i.ProductID(),
		Quantity:  i.Quantity(),
	}
}

func productFromDomain(p *product.Product) Product {
	return Product{ID: p.ID(), Name: p.Name(), Price: p.Price()}
}

func productFromResponse(p queries.ProductResponse) Product {
	return Product{ID: p.ID, Name: p.Name, Price: p.Price}
}

func historyFromResponse(e queries.HistoryEntryResponse) HistoryEntry {
	return HistoryEntry{
		ID:        e.ID,
		OrderID:   e.OrderID,
		CreatedAt: e.CreatedAt,
		Kind:      e.Kind.String(),
		Payload:   e.Payload,
	}
}
