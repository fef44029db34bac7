package http

import (
	"net/http"

	"loansaarthi-backend/internal/usecase/otp"

	"github.com/labstack/echo/v4"
)

type OTPHandler struct{ uc *otp.Usecase }

func NewOTPHandler(uc *otp.Usecase) *OTPHandler { return &OTPHandler{uc: uc} }

type sendOTPReq struct {
	Mobile string `json:"mobile" validate:"required,mobile10"`
}

type verifyOTPReq struct {
	Mobile string `json:"mobile" validate:"required,mobile10"`
	OTP    string `json:"otp"    validate:"required,len=6,numeric"`
}

func (h *OTPHandler) Send(c echo.Context) error {
	var req sendOTPReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	res, err := h.uc.Send(c.Request().Context(), req.Mobile)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *OTPHandler) Verify(c echo.Context) error {
	var req verifyOTPReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.Verify(c.Request().Context(), req.Mobile, req.OTP); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
