package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/internal/inventory/usecase/command"
	"github.com/tair/stock-reservation/internal/inventory/usecase/query"
	"github.com/tair/stock-reservation/pkg/logger"
)

// InventoryHandler handles HTTP requests for the stock ledger and reservations
type InventoryHandler struct {
	// Command handlers
	createProductHandler *command.CreateProductHandler
	restockHandler       *command.RestockHandler
	reserveHandler       *command.ReserveStockHandler
	releaseHandler       *command.ReleaseReservationHandler
	confirmHandler       *command.ConfirmReservationHandler

	// Query handlers
	getInventoryHandler     *query.GetInventoryHandler
	listInventoryHandler    *query.ListInventoryHandler
	listReservationsHandler *query.ListReservationsHandler

	requestCounter      *prometheus.CounterVec
	requestLatency      *prometheus.HistogramVec
	reservationOutcomes *prometheus.CounterVec
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	uow domain.UnitOfWork,
	ledgerRepo domain.LedgerRepository,
	reservationRepo domain.ReservationRepository,
	cfg *config.Config,
	alerter domain.StockAlerter,
) *InventoryHandler {
	releaseHandler := command.NewReleaseReservationHandler(uow, cfg, alerter)

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reservationOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_reservation_outcomes_total",
			Help: "Reservation lifecycle outcomes",
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(requestCounter, requestLatency, reservationOutcomes)

	return &InventoryHandler{
		createProductHandler:    command.NewCreateProductHandler(uow, cfg),
		restockHandler:          command.NewRestockHandler(uow, cfg, alerter),
		reserveHandler:          command.NewReserveStockHandler(uow, cfg, alerter),
		releaseHandler:          releaseHandler,
		confirmHandler:          command.NewConfirmReservationHandler(uow, cfg),
		getInventoryHandler:     query.NewGetInventoryHandler(ledgerRepo),
		listInventoryHandler:    query.NewListInventoryHandler(ledgerRepo),
		listReservationsHandler: query.NewListReservationsHandler(reservationRepo),
		requestCounter:          requestCounter,
		requestLatency:          requestLatency,
		reservationOutcomes:     reservationOutcomes,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateProduct handles POST /api/products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		VendorID     uint   `json:"vendor_id"`
		InitialStock int    `json:"initial_stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.createProductHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:         req.Name,
		VendorID:     req.VendorID,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// Restock handles POST /api/products/{id}/restock
func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.restockHandler.Handle(r.Context(), command.RestockCommand{
		ProductID: uint(id),
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint64("product_id", id).Msg("Failed to restock product")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock replenished successfully",
		Data:    product,
	})
}

// Reserve handles POST /api/reservations
func (h *InventoryHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  uint   `json:"product_id"`
		OrderID    string `json:"order_id"`
		Quantity   int    `json:"quantity"`
		TTLSeconds int    `json:"ttl_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	reservation, err := h.reserveHandler.Handle(r.Context(), command.ReserveStockCommand{
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Quantity:  req.Quantity,
		TTL:       time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			h.reservationOutcomes.WithLabelValues("insufficient_stock").Inc()
		}
		logger.Warn(r.Context()).
			Err(err).
			Uint("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("Reservation rejected")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.reservationOutcomes.WithLabelValues("reserved").Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock reserved successfully",
		Data:    reservation,
	})
}

// Release handles DELETE /api/reservations/{id}
func (h *InventoryHandler) Release(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.releaseHandler.Handle(r.Context(), command.ReleaseReservationCommand{
		ReservationID: vars["id"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("reservation_id", vars["id"]).Msg("Failed to release reservation")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.reservationOutcomes.WithLabelValues("released").Inc()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Reservation released",
	})
}

// Confirm handles POST /api/reservations/{id}/confirm
func (h *InventoryHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.confirmHandler.Handle(r.Context(), command.ConfirmReservationCommand{
		ReservationID: vars["id"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("reservation_id", vars["id"]).Msg("Failed to confirm reservation")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.reservationOutcomes.WithLabelValues("confirmed").Inc()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Reservation confirmed",
	})
}

// GetInventory handles GET /api/inventory/{product_id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["product_id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	product, err := h.getInventoryHandler.Handle(r.Context(), query.GetInventoryQuery{ProductID: uint(id)})
	if err != nil {
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListInventory handles GET /api/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.listInventoryHandler.Handle(r.Context(), query.ListInventoryQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventory")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list inventory"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// ListReservations handles GET /api/reservations
func (h *InventoryHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reservations, err := h.listReservationsHandler.Handle(r.Context(), query.ListReservationsQuery{
		OrderID: r.URL.Query().Get("order_id"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list reservations")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list reservations"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: reservations})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.instrument("create_product", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}/restock", h.instrument("restock", h.Restock)).Methods("POST")
	router.HandleFunc("/api/inventory", h.instrument("list_inventory", h.ListInventory)).Methods("GET")
	router.HandleFunc("/api/inventory/{product_id}", h.instrument("get_inventory", h.GetInventory)).Methods("GET")
	router.HandleFunc("/api/reservations", h.instrument("reserve", h.Reserve)).Methods("POST")
	router.HandleFunc("/api/reservations", h.instrument("list_reservations", h.ListReservations)).Methods("GET")
	router.HandleFunc("/api/reservations/{id}", h.instrument("release", h.Release)).Methods("DELETE")
	router.HandleFunc("/api/reservations/{id}/confirm", h.instrument("confirm", h.Confirm)).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Stock reservation service is healthy",
		})
	}).Methods("GET")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *InventoryHandler) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(recorder, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(recorder.status)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
