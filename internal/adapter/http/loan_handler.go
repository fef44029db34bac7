package http

import (
	"net/http"
	"strings"
	"time"

	"loansaarthi-backend/internal/usecase/loan"
	"loansaarthi-backend/pkg/pagination"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	CustomerID   string          `json:"customer_id"   validate:"required,hex32"`
	Amount       decimal.Decimal `json:"amount"        validate:"required,money"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"required,money,lte=100"`
	Tenure       int             `json:"tenure"        validate:"required,tenure"`
	Type         string          `json:"type"          validate:"required"`
	Purpose      string          `json:"purpose"       validate:"required,max=500"`
}

type updateLoanReq struct {
	Amount       *decimal.Decimal `json:"amount"        validate:"omitempty,money"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,money,lte=100"`
	Tenure       *int             `json:"tenure"        validate:"omitempty,tenure"`
	Type         *string          `json:"type"          validate:"omitempty"`
	Purpose      *string          `json:"purpose"       validate:"omitempty,max=500"`
}

type decideReq struct {
	Action   string `json:"action"   validate:"required"`
	Comments string `json:"comments" validate:"max=1000"`
}

type patchStatusReq struct {
	Status        string     `json:"status"         validate:"required"`
	DisbursedDate *time.Time `json:"disbursed_date"`
	Comments      string     `json:"comments"       validate:"max=1000"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req createLoanReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), a, loan.CreateLoanInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListLoans: ?status=&customer_id=&page=&limit=
func (h *LoanHandler) ListLoans(c echo.Context) error {
	p := pagination.Parse(c)
	res, err := h.uc.List(c.Request().Context(), loan.ListInput{
		CustomerID: strings.TrimSpace(c.QueryParam("customer_id")),
		Status:     strings.TrimSpace(c.QueryParam("status")),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) ListCustomerLoans(c echo.Context) error {
	p := pagination.Parse(c)
	res, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("customer_id"), loan.ListInput{
		Status: strings.TrimSpace(c.QueryParam("status")),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateLoanReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), a, c.Param("loan_id"), loan.UpdateLoanInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Request().Context(), a, c.Param("loan_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	dto, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Decide(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req decideReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Decide(c.Request().Context(), a, c.Param("loan_id"), loan.DecideInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) PatchStatus(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req patchStatusReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.PatchStatus(c.Request().Context(), a, c.Param("loan_id"), loan.PatchStatusInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
