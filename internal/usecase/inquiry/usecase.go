package inquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/actor"
	"loansaarthi-backend/internal/domain/errs"
	domain "loansaarthi-backend/internal/domain/inquiry"
	"loansaarthi-backend/internal/domain/otp"
	"loansaarthi-backend/pkg/id"

	"gorm.io/gorm"
)

const dobLayout = "2006-01-02"

type Usecase struct {
	inquiries domain.Repository
	mobiles   domain.MobileVerifier
	log       *slog.Logger
}

func NewUsecase(inquiries domain.Repository, mobiles domain.MobileVerifier, log *slog.Logger) *Usecase {
	return &Usecase{inquiries: inquiries, mobiles: mobiles, log: log}
}

func toDTO(q *domain.Inquiry) *InquiryDTO {
	return &InquiryDTO{
		InquiryID:      q.InquiryID,
		Name:           q.Name,
		Gender:         q.Gender,
		DateOfBirth:    q.DateOfBirth.Format(dobLayout),
		Mobile:         q.Mobile,
		Email:          q.Email,
		PAN:            q.PAN,
		LoanAmount:     q.LoanAmount,
		EmploymentType: q.EmploymentType,
		CompanyName:    q.CompanyName,
		MonthlyIncome:  q.MonthlyIncome,
		WorkEmail:      q.WorkEmail,
		Address1:       q.Address1,
		Address2:       q.Address2,
		City:           q.City,
		State:          q.State,
		Pincode:        q.Pincode,
		OTPVerified:    q.OTPVerified,
		Status:         string(q.Status),
		Notes:          q.Notes,
		ReviewedBy:     q.ReviewedBy,
		ReviewedAt:     q.ReviewedAt,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func invalid(field, why string) error {
	return fmt.Errorf("%w: %s %s", errs.ErrInvalidArgument, field, why)
}

// Apply records a public application. The mobile must have passed OTP
// verification within otp.VerifiedWindow; that proof is spent here.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*InquiryDTO, error) {
	q := &domain.Inquiry{
		InquiryID:      id.NewID32(),
		Name:           strings.TrimSpace(in.Name),
		Gender:         strings.TrimSpace(in.Gender),
		Mobile:         strings.TrimSpace(in.Mobile),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		PAN:            strings.ToUpper(strings.TrimSpace(in.PAN)),
		LoanAmount:     in.LoanAmount,
		EmploymentType: strings.ToUpper(strings.TrimSpace(in.EmploymentType)),
		CompanyName:    strings.TrimSpace(in.CompanyName),
		MonthlyIncome:  in.MonthlyIncome,
		WorkEmail:      strings.ToLower(strings.TrimSpace(in.WorkEmail)),
		Address1:       strings.TrimSpace(in.Address1),
		Address2:       strings.TrimSpace(in.Address2),
		City:           strings.TrimSpace(in.City),
		State:          strings.TrimSpace(in.State),
		Pincode:        strings.TrimSpace(in.Pincode),
		Status:         domain.StatusNew,
	}
	for _, f := range []struct{ name, v string }{
		{"name", q.Name}, {"gender", q.Gender}, {"email", q.Email}, {"employment_type", q.EmploymentType},
		{"address1", q.Address1}, {"city", q.City}, {"state", q.State},
	} {
		if f.v == "" {
			return nil, invalid(f.name, "is required")
		}
	}
	if !otp.ValidMobile(q.Mobile) {
		return nil, otp.ErrInvalidMobile
	}
	if !domain.ValidPAN(q.PAN) {
		return nil, invalid("pan", "must look like ABCDE1234F")
	}
	if !domain.ValidPincode(q.Pincode) {
		return nil, invalid("pincode", "must be 6 digits")
	}
	if !q.LoanAmount.IsPositive() {
		return nil, invalid("loan_amount", "must be positive")
	}
	if q.MonthlyIncome.IsNegative() {
		return nil, invalid("monthly_income", "must not be negative")
	}
	dob, err := time.Parse(dobLayout, strings.TrimSpace(in.DateOfBirth))
	if err != nil || !dob.Before(time.Now().UTC()) {
		return nil, invalid("date_of_birth", "must be a past date as YYYY-MM-DD")
	}
	q.DateOfBirth = dob

	ok, err := u.mobiles.ConsumeVerified(ctx, q.Mobile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMobileUnverified
	}
	q.OTPVerified = true

	if err := u.inquiries.Create(ctx, q); err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "loan inquiry received", slog.String("inquiry_id", q.InquiryID))
	return toDTO(q), nil
}

func requireStaff(a actor.Actor) error {
	if !a.Role.CanDecide() {
		return fmt.Errorf("%w: role %q cannot handle inquiries", errs.ErrForbidden, a.Role)
	}
	return nil
}

func (u *Usecase) get(ctx context.Context, inquiryID string) (*domain.Inquiry, error) {
	q, err := u.inquiries.GetByInquiryID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (u *Usecase) Get(ctx context.Context, a actor.Actor, inquiryID string) (*InquiryDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	q, err := u.get(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	return toDTO(q), nil
}

func (u *Usecase) List(ctx context.Context, a actor.Actor, in ListInput) (*ListResult, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	f := domain.ListFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, domain.ErrUnknownStatus
		}
		f.Status = st
	}
	rows, total, err := u.inquiries.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &ListResult{Items: make([]InquiryDTO, 0, len(rows)), Total: total, Limit: in.Limit, Offset: in.Offset}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i]))
	}
	return out, nil
}

// Patch moves the follow-up status and/or replaces the notes.
func (u *Usecase) Patch(ctx context.Context, a actor.Actor, inquiryID string, in PatchInput) (*InquiryDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	if in.Status == nil && in.Notes == nil {
		return nil, domain.ErrNothingToPatch
	}
	var target domain.Status
	if in.Status != nil {
		st, ok := domain.ParseStatus(*in.Status)
		if !ok {
			return nil, domain.ErrUnknownStatus
		}
		target = st
	}

	q, err := u.get(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if target != "" {
		if err := q.MoveTo(target, a.ID, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		q.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := u.inquiries.Save(ctx, q); err != nil {
		return nil, err
	}
	return toDTO(q), nil
}
