// Package http exposes the order commands and queries as a JSON API.
package http

import (
	"log/slog"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/history"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	AddItem          commands.AddItemCommandHandler
	RemoveItem       commands.RemoveItemCommandHandler
	ChangeOrderState commands.ChangeOrderStateCommandHandler
	CreateProduct    commands.CreateProductCommandHandler

	SearchOrders    queries.SearchOrdersQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
	SearchProducts  queries.SearchProductsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http_server")}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.SearchOrders)
	v1.POST("/orders/:id/items", s.AddItem)
	v1.DELETE("/orders/:id/items/:itemId", s.RemoveItem)
	v1.POST("/orders/:id/processing", s.MoveToProcessing)
	v1.POST("/orders/:id/completion", s.CompleteOrder)
	v1.POST("/orders/:id/cancellation", s.CancelOrder)
	v1.GET("/orders/:id/history", s.GetOrderHistory)

	v1.POST("/products", s.CreateProduct)
	v1.GET("/products", s.SearchProducts)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(req.CreatedBy)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// AddItem handles POST /api/v1/orders/:id/items.
func (s *Server) AddItem(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req NewItem
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddItemCommand(orderID, req.ProductID, req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.h.AddItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, itemFromDomain(item))
}

// RemoveItem handles DELETE /api/v1/orders/:id/items/:itemId.
func (s *Server) RemoveItem(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	itemID, err := pathID(ctx, "itemId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveItemCommand(orderID, itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.RemoveItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MoveToProcessing handles POST /api/v1/orders/:id/processing.
func (s *Server) MoveToProcessing(ctx echo.Context) error {
	return s.changeState(ctx, commands.NewMoveToProcessingCommand)
}

// CompleteOrder handles POST /api/v1/orders/:id/completion.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	return s.changeState(ctx, commands.NewCompleteOrderCommand)
}

// CancelOrder handles POST /api/v1/orders/:id/cancellation.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.changeState(ctx, commands.NewCancelOrderCommand)
}

func (s *Server) changeState(
	ctx echo.Context,
	newCommand func(orderID int64) (commands.ChangeOrderStateCommand, error),
) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := newCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.ChangeOrderState.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// SearchOrders handles GET /api/v1/orders?id=&state=&createdBy=&page=&pageSize=.
func (s *Server) SearchOrders(ctx echo.Context) error {
	orderIDs, err := ids(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	number, size, err := page(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewSearchOrdersQuery(
		orderIDs, ctx.QueryParams()["state"], ctx.QueryParam("createdBy"), number, size)
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.h.SearchOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Order, len(found))
	for i, o := range found {
		response[i] = orderFromResponse(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history?kind=&page=&pageSize=.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	number, size, err := page(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var kind *history.Kind
	if raw := ctx.QueryParam("kind"); raw != "" {
		k, err := history.ParseKind(raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		kind = &k
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID, number, size, kind)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		response[i] = historyFromResponse(e)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req NewProduct
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateProductCommand(req.Name, req.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.h.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, productFromDomain(p))
}

// SearchProducts handles GET /api/v1/products?id=&name=&minPrice=&maxPrice=&page=&pageSize=.
func (s *Server) SearchProducts(ctx echo.Context) error {
	productIDs, err := ids(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	minPrice, err := optionalDecimal(ctx, "minPrice")
	if err != nil {
		return s.fail(ctx, err)
	}
	maxPrice, err := optionalDecimal(ctx, "maxPrice")
	if err != nil {
		return s.fail(ctx, err)
	}
	number, size, err := page(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewSearchProductsQuery(
		productIDs, ctx.QueryParam("name"), minPrice, maxPrice, number, size)
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.h.SearchProducts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Product, len(found))
	for i, p := range found {
		response[i] = productFromResponse(p)
	}
	return ctx.JSON(http.StatusOK, response)
}
