package http

import (
	"net/http"
	"strings"

	"loansaarthi-backend/internal/usecase/inquiry"
	"loansaarthi-backend/pkg/pagination"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type InquiryHandler struct{ uc *inquiry.Usecase }

func NewInquiryHandler(uc *inquiry.Usecase) *InquiryHandler { return &InquiryHandler{uc: uc} }

type applyReq struct {
	Name           string          `json:"name"            validate:"required,max=255"`
	Gender         string          `json:"gender"          validate:"required,oneof=Male Female Other"`
	DateOfBirth    string          `json:"date_of_birth"   validate:"required,datetime=2006-01-02"`
	Mobile         string          `json:"mobile"          validate:"required,mobile10"`
	Email          string          `json:"email"           validate:"required,email"`
	PAN            string          `json:"pan"             validate:"required,pan"`
	LoanAmount     decimal.Decimal `json:"loan_amount"     validate:"required,money"`
	EmploymentType string          `json:"employment_type" validate:"required,max=32"`
	CompanyName    string          `json:"company_name"    validate:"max=255"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"  validate:"gte=0,dec2"`
	WorkEmail      string          `json:"work_email"      validate:"omitempty,email"`
	Address1       string          `json:"address1"        validate:"required,max=255"`
	Address2       string          `json:"address2"        validate:"max=255"`
	City           string          `json:"city"            validate:"required"`
	State          string          `json:"state"           validate:"required"`
	Pincode        string          `json:"pincode"         validate:"required,pincode"`
}

type patchInquiryReq struct {
	Status *string `json:"status" validate:"omitempty"`
	Notes  *string `json:"notes"  validate:"omitempty,max=2000"`
}

// Apply is public; the caller proves the mobile through /otp/verify first.
func (h *InquiryHandler) Apply(c echo.Context) error {
	var req applyReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Apply(c.Request().Context(), inquiry.ApplyInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InquiryHandler) ListInquiries(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	p := pagination.Parse(c)
	res, err := h.uc.List(c.Request().Context(), a, inquiry.ListInput{
		Status: strings.TrimSpace(c.QueryParam("status")),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *InquiryHandler) GetInquiry(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	dto, err := h.uc.Get(c.Request().Context(), a, c.Param("inquiry_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InquiryHandler) PatchInquiry(c echo.Context) error {
	a, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req patchInquiryReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Patch(c.Request().Context(), a, c.Param("inquiry_id"), inquiry.PatchInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
