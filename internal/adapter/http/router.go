package http

import (
	"log/slog"
	"time"

	"loansaarthi-backend/internal/adapter/middleware"
	"loansaarthi-backend/internal/domain/actor"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Health    *Handler
	Loans     *LoanHandler
	Documents *DocumentHandler
	Customers *CustomerHandler
	OTP       *OTPHandler
	Inquiries *InquiryHandler
}

type RouterConfig struct {
	JWTSecret      []byte
	Redis          redis.Cmdable
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

// RegisterRoutes mounts every route. /health, /otp/* and /apply are public;
// the rest need a bearer token, and mutating routes go through idempotency.
func RegisterRoutes(e *echo.Echo, h Handlers, cfg RouterConfig) {
	e.GET("/health", h.Health.Health)

	e.POST("/otp/send", h.OTP.Send)
	e.POST("/otp/verify", h.OTP.Verify)
	e.POST("/apply", h.Inquiries.Apply)

	api := e.Group("",
		middleware.Auth(cfg.JWTSecret),
		middleware.IdempotencyMiddleware(cfg.Redis, cfg.IdempotencyTTL, cfg.Logger),
	)
	staff := middleware.RequireRole(actor.StaffRoles()...)

	api.POST("/customers", h.Customers.CreateCustomer)
	api.GET("/customers/:customer_id", h.Customers.GetCustomer)
	api.PUT("/customers/:customer_id", h.Customers.UpdateCustomer)
	api.DELETE("/customers/:customer_id", h.Customers.DeleteCustomer)
	api.GET("/customers/:customer_id/loans", h.Loans.ListCustomerLoans)
	api.GET("/customers/:customer_id/documents", h.Documents.ListCustomerDocuments)

	api.POST("/loans", h.Loans.CreateLoan)
	api.GET("/loans", h.Loans.ListLoans)
	api.GET("/loans/:loan_id", h.Loans.GetLoan)
	api.PUT("/loans/:loan_id", h.Loans.UpdateLoan)
	api.DELETE("/loans/:loan_id", h.Loans.DeleteLoan)
	api.GET("/loans/:loan_id/schedule", h.Loans.Schedule)
	api.GET("/loans/:loan_id/documents", h.Documents.ListLoanDocuments)
	api.POST("/loans/:loan_id/decision", h.Loans.Decide, staff)
	api.PATCH("/loans/:loan_id/status", h.Loans.PatchStatus, staff)

	api.POST("/documents", h.Documents.RegisterDocument)
	api.GET("/documents", h.Documents.ListDocuments)
	api.GET("/documents/:document_id", h.Documents.GetDocument)
	api.POST("/documents/:document_id/verify", h.Documents.VerifyDocument, staff)

	api.GET("/inquiries", h.Inquiries.ListInquiries, staff)
	api.GET("/inquiries/:inquiry_id", h.Inquiries.GetInquiry, staff)
	api.PATCH("/inquiries/:inquiry_id", h.Inquiries.PatchInquiry, staff)
}
