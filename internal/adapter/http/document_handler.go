package http

import (
	"net/http"
	"strings"
	"time"

	"loansaarthi-backend/internal/usecase/document"
	"loansaarthi-backend/pkg/pagination"

	"github.com/labstack/echo/v4"
)

type DocumentHandler struct{ uc *document.Usecase }

func NewDocumentHandler(uc *document.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

// Bytes live in object storage; only the metadata comes through here.
type registerDocumentReq struct {
	CustomerID string     `json:"customer_id" validate:"required,hex32"`
	LoanID     string     `json:"loan_id"     validate:"omitempty,hex32"`
	Name       string     `json:"name"        validate:"required,max=255"`
	Type       string     `json:"type"        validate:"required"`
	URL        string     `json:"url"         validate:"required,url"`
	StorageKey string     `json:"storage_key" validate:"max=512"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

type verifyDocumentReq struct {
	Action   string `json:"action"   validate:"required"`
	Comments string `json:"comments" validate:"max=1000"`
}

func (h *DocumentHandler) RegisterDocument(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req registerDocumentReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), a, document.RegisterInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DocumentHandler) GetDocument(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("document_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	p := pagination.Parse(c)
	res, err := h.uc.List(c.Request().Context(), document.ListInput{
		CustomerID: strings.TrimSpace(c.QueryParam("customer_id")),
		Status:     strings.TrimSpace(c.QueryParam("status")),
		Type:       strings.TrimSpace(c.QueryParam("type")),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *DocumentHandler) ListLoanDocuments(c echo.Context) error {
	items, err := h.uc.ListByLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *DocumentHandler) ListCustomerDocuments(c echo.Context) error {
	items, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// VerifyDocument may auto-approve the owning loan; the result says so.
func (h *DocumentHandler) VerifyDocument(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req verifyDocumentReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	res, err := h.uc.Verify(c.Request().Context(), a, c.Param("document_id"), document.VerifyInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
