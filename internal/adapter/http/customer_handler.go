package http

import (
	"net/http"

	"loansaarthi-backend/internal/usecase/customer"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct{ uc *customer.Usecase }

func NewCustomerHandler(uc *customer.Usecase) *CustomerHandler { return &CustomerHandler{uc: uc} }

type createCustomerReq struct {
	Name     string `json:"name"      validate:"required,max=255"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"     validate:"required,mobile10"`
	Address  string `json:"address"   validate:"required"`
	City     string `json:"city"      validate:"required"`
	State    string `json:"state"     validate:"required"`
	Country  string `json:"country"   validate:"required"`
	BranchID string `json:"branch_id" validate:"required"`
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req createCustomerReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), a, customer.CreateCustomerInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// PUT replaces the whole profile, same rules as create.
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	var req createCustomerReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("customer_id"), customer.UpdateCustomerInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Request().Context(), a, c.Param("customer_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
