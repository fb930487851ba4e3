// Package http exposes draft item, quotation assembly and PDF endpoints.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/construinmuniza/cotizador/internal/catalog"
	"github.com/construinmuniza/cotizador/internal/money"
	"github.com/construinmuniza/cotizador/internal/platform/httpx"
	"github.com/construinmuniza/cotizador/internal/quote"
	"github.com/construinmuniza/cotizador/internal/session"
	"github.com/construinmuniza/cotizador/report"
)

// Renderer is the minimal subset of the report renderer the handler uses.
type Renderer interface {
	Render(ctx context.Context, q quote.Quotation, lh report.Letterhead) ([]byte, error)
}

// Handler wires quotation endpoints.
type Handler struct {
	logger    *slog.Logger
	sessions  *session.Manager
	assembler *quote.Assembler
	renderer  Renderer
	validator *validator.Validate
}

// NewHandler constructs the quotation handler.
func NewHandler(logger *slog.Logger, sessions *session.Manager, assembler *quote.Assembler, renderer Renderer) *Handler {
	return &Handler{
		logger:    logger,
		sessions:  sessions,
		assembler: assembler,
		renderer:  renderer,
		validator: validator.New(),
	}
}

// MountRoutes registers quotation routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}/items", h.handleListItems)
	r.Post("/sessions/{sessionID}/items", h.handleAddItem)
	r.Delete("/sessions/{sessionID}/items/{index}", h.handleRemoveItem)
	r.Post("/sessions/{sessionID}/quotation", h.handleAssemble)
	r.Post("/sessions/{sessionID}/quotation/pdf", h.handleRenderPDF)
	r.Put("/sessions/{sessionID}/letterhead", h.handleSetLetterhead)
}

// addItemRequest adds either a catalog selection (by reference) or a manual
// line (description plus unit price, the fallback when extraction found no
// price in the agent's reply).
type addItemRequest struct {
	Reference   string `json:"reference"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price" validate:"min=0"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	Location    string `json:"location"`
	TaxIncluded *bool  `json:"tax_included"`
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sess.Items()})
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	var item quote.LineItem
	switch {
	case req.Reference != "":
		loc := catalog.LocationCaldas
		if req.Location != "" {
			loc = catalog.Location(req.Location)
			if !loc.Valid() {
				httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("unknown location %q", req.Location))
				return
			}
		}
		taxIncluded := true
		if req.TaxIncluded != nil {
			taxIncluded = *req.TaxIncluded
		}
		product, err := sess.Catalog().GetByReference(req.Reference, loc, taxIncluded)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		item = quote.SelectionItem(product, req.Quantity)
	case req.Description != "" && req.UnitPrice > 0:
		qty := req.Quantity
		if qty < 1 {
			qty = 1
		}
		item = quote.LineItem{
			Reference:   "MANUAL",
			Description: req.Description,
			Quantity:    qty,
			UnitPrice:   req.UnitPrice,
		}
	default:
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed",
			"either reference or description plus unit_price is required")
		return
	}

	sess.AddItem(item)
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"item":  item,
		"items": sess.Items(),
	})
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "index must be an integer")
		return
	}
	if err := sess.RemoveItem(index); err != nil {
		httpx.Problem(w, http.StatusNotFound, "Item Not Found", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sess.Items()})
}

type assembleRequest struct {
	Client struct {
		Name    string `json:"name" validate:"required"`
		Company string `json:"company"`
		Email   string `json:"email" validate:"omitempty,email"`
		Phone   string `json:"phone"`
	} `json:"client"`
	Location        string `json:"location"`
	TaxIncluded     *bool  `json:"tax_included"`
	DiscountPercent int64  `json:"discount_percent" validate:"min=0,max=100"`
	ValidityDays    int    `json:"validity_days" validate:"min=0"`
}

type assembleResponse struct {
	Quotation quote.Quotation `json:"quotation"`
	Summary   struct {
		Subtotal string `json:"subtotal"`
		Discount string `json:"discount,omitempty"`
		Total    string `json:"total"`
	} `json:"summary"`
}

func (h *Handler) handleAssemble(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	var req assembleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	opts := quote.Options{
		Location:        catalog.Location(req.Location),
		TaxIncluded:     true,
		DiscountPercent: req.DiscountPercent,
		ValidityDays:    req.ValidityDays,
	}
	if req.TaxIncluded != nil {
		opts.TaxIncluded = *req.TaxIncluded
	}

	client := quote.Client{
		Name:    req.Client.Name,
		Company: req.Client.Company,
		Email:   req.Client.Email,
		Phone:   req.Client.Phone,
	}
	q, err := h.assembler.Assemble(sess.Items(), client, opts)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	sess.SetQuotation(q)
	h.logger.Info("quotation assembled",
		slog.String("session", sess.ID.String()),
		slog.String("number", q.Number),
		slog.Int64("total", q.Total))

	resp := assembleResponse{Quotation: q}
	resp.Summary.Subtotal = money.Format(q.Subtotal)
	if q.DiscountPercent > 0 {
		resp.Summary.Discount = fmt.Sprintf("%d%% - %s", q.DiscountPercent, money.Format(q.DiscountValue))
	}
	resp.Summary.Total = money.Format(q.Total)
	httpx.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleRenderPDF(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Renderer Unavailable", "PDF rendering is not configured")
		return
	}
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	q, ok := sess.Quotation()
	if !ok {
		httpx.Problem(w, http.StatusConflict, "No Quotation", "assemble a quotation before rendering")
		return
	}

	// Optional letterhead override; the quotation record itself is immutable.
	lh := sess.Letterhead()
	if r.ContentLength > 0 {
		var override report.Letterhead
		if err := httpx.DecodeJSON(r, &override); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
			return
		}
		lh = override
	}

	pdf, err := h.renderer.Render(r.Context(), q, lh)
	if err != nil {
		h.logger.Error("render quotation pdf",
			slog.String("session", sess.ID.String()),
			slog.String("number", q.Number),
			slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cotizacion_%s.pdf", q.Number))
	_, _ = w.Write(pdf)
}

func (h *Handler) handleSetLetterhead(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	var lh report.Letterhead
	if err := httpx.DecodeJSON(r, &lh); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	sess.SetLetterhead(lh)
	httpx.JSON(w, http.StatusOK, sess.Letterhead())
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Session ID", err.Error())
		return nil, false
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		httpx.RespondError(w, err)
		return nil, false
	}
	return sess, true
}
