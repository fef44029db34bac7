package inquiry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"loansaarthi-backend/internal/domain/actor"
	"loansaarthi-backend/internal/domain/errs"
	domain "loansaarthi-backend/internal/domain/inquiry"
	"loansaarthi-backend/internal/domain/otp"
	"loansaarthi-backend/internal/testutil/inquirymock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const mobile = "9876543210"

var (
	officer = actor.Actor{ID: "officer-1", Role: actor.RoleLoanOfficer}
	support = actor.Actor{ID: "cs-1", Role: actor.RoleCustomerService}
)

func validApply() ApplyInput {
	return ApplyInput{
		Name: " Ravi Kumar ", Gender: "Male", DateOfBirth: "1990-04-12", Mobile: mobile,
		Email: "Ravi@Example.com", PAN: "abcde1234f", LoanAmount: decimal.RequireFromString("500000"),
		EmploymentType: "salaried", CompanyName: "Acme", MonthlyIncome: decimal.RequireFromString("85000"),
		Address1: "221 FC Road", City: "Pune", State: "MH", Pincode: "411004",
	}
}

type fixture struct {
	uc       *Usecase
	repo     *inquirymock.Repo
	verifier *inquirymock.Verifier
	stored   map[string]*domain.Inquiry
	log      *bytes.Buffer
}

func newFixture() *fixture {
	f := &fixture{
		verifier: &inquirymock.Verifier{Verified: map[string]bool{mobile: true}},
		stored:   map[string]*domain.Inquiry{},
		log:      &bytes.Buffer{},
	}
	f.repo = &inquirymock.Repo{
		CreateFn: func(_ context.Context, q *domain.Inquiry) error { f.stored[q.InquiryID] = q; return nil },
		GetByInquiryIDFn: func(_ context.Context, id string) (*domain.Inquiry, error) {
			if q, ok := f.stored[id]; ok {
				return q, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	f.uc = NewUsecase(f.repo, f.verifier, slog.New(slog.NewTextHandler(f.log, nil)))
	return f
}

// ----- Apply -----

func TestApply_Success(t *testing.T) {
	f := newFixture()

	dto, err := f.uc.Apply(context.Background(), validApply())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(dto.InquiryID) != 32 || dto.Status != string(domain.StatusNew) || !dto.OTPVerified {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.Name != "Ravi Kumar" || dto.Email != "ravi@example.com" || dto.PAN != "ABCDE1234F" || dto.EmploymentType != "SALARIED" {
		t.Fatalf("fields not normalized: %+v", dto)
	}
	if dto.DateOfBirth != "1990-04-12" {
		t.Fatalf("date_of_birth = %q", dto.DateOfBirth)
	}
	if _, ok := f.stored[dto.InquiryID]; !ok {
		t.Fatal("inquiry not stored")
	}
	if !strings.Contains(f.log.String(), "loan inquiry received") {
		t.Fatalf("inquiry not logged: %q", f.log.String())
	}
}

func TestApply_VerificationIsSingleUse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.uc.Apply(ctx, validApply()); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	_, err := f.uc.Apply(ctx, validApply())
	if !errors.Is(err, domain.ErrMobileUnverified) || !errors.Is(err, errs.ErrPreconditionFailed) {
		t.Fatalf("second Apply: want ErrMobileUnverified, got %v", err)
	}
	if len(f.stored) != 1 {
		t.Fatalf("stored = %d, want 1", len(f.stored))
	}
}

func TestApply_Rejects(t *testing.T) {
	cases := []struct {
		name string
		edit func(*ApplyInput)
		want error
	}{
		{"blank name", func(in *ApplyInput) { in.Name = " " }, errs.ErrInvalidArgument},
		{"bad mobile", func(in *ApplyInput) { in.Mobile = "12345" }, otp.ErrInvalidMobile},
		{"bad pan", func(in *ApplyInput) { in.PAN = "1234" }, errs.ErrInvalidArgument},
		{"bad pincode", func(in *ApplyInput) { in.Pincode = "0110" }, errs.ErrInvalidArgument},
		{"zero amount", func(in *ApplyInput) { in.LoanAmount = decimal.Zero }, errs.ErrInvalidArgument},
		{"negative income", func(in *ApplyInput) { in.MonthlyIncome = decimal.NewFromInt(-1) }, errs.ErrInvalidArgument},
		{"bad dob", func(in *ApplyInput) { in.DateOfBirth = "12/04/1990" }, errs.ErrInvalidArgument},
		{"future dob", func(in *ApplyInput) { in.DateOfBirth = "2999-01-01" }, errs.ErrInvalidArgument},
		{"unverified mobile", func(in *ApplyInput) { in.Mobile = "9999999999" }, domain.ErrMobileUnverified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			in := validApply()
			tc.edit(&in)
			if _, err := f.uc.Apply(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if len(f.stored) != 0 {
				t.Fatal("rejected application must not be stored")
			}
			// validation failures must not spend the verification
			if tc.want != domain.ErrMobileUnverified && !f.verifier.Verified[mobile] {
				t.Fatal("verification spent on a rejected form")
			}
		})
	}
}

func TestApply_VerifierFailure(t *testing.T) {
	f := newFixture()
	f.verifier.Err = errors.New("redis down")
	if _, err := f.uc.Apply(context.Background(), validApply()); err == nil || err.Error() != "redis down" {
		t.Fatalf("want verifier error, got %v", err)
	}
}

// ----- staff side -----

func TestStaffOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	status := "REVIEWED"

	if _, err := f.uc.Get(ctx, support, "x"); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("Get: want ErrForbidden, got %v", err)
	}
	if _, err := f.uc.List(ctx, support, ListInput{}); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("List: want ErrForbidden, got %v", err)
	}
	if _, err := f.uc.Patch(ctx, support, "x", PatchInput{Status: &status}); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("Patch: want ErrForbidden, got %v", err)
	}
}

func TestGetAndList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dto, err := f.uc.Apply(ctx, validApply())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := f.uc.Get(ctx, officer, dto.InquiryID)
	if err != nil || got.InquiryID != dto.InquiryID {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := f.uc.Get(ctx, officer, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	var seen domain.ListFilter
	f.repo.ListFn = func(_ context.Context, lf domain.ListFilter) ([]domain.Inquiry, int64, error) {
		seen = lf
		return []domain.Inquiry{*f.stored[dto.InquiryID]}, 7, nil
	}
	res, err := f.uc.List(ctx, officer, ListInput{Status: "new", Limit: 20, Offset: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if seen.Status != domain.StatusNew || seen.Limit != 20 || seen.Offset != 20 {
		t.Fatalf("filter = %+v", seen)
	}
	if res.Total != 7 || len(res.Items) != 1 || res.Offset != 20 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, err := f.uc.List(ctx, officer, ListInput{Status: "LOST"}); !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("want ErrUnknownStatus, got %v", err)
	}
}

func TestPatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dto, err := f.uc.Apply(ctx, validApply())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	saves := 0
	f.repo.SaveFn = func(context.Context, *domain.Inquiry) error { saves++; return nil }

	reviewed, notes := "reviewed", "  asked for salary slips "
	got, err := f.uc.Patch(ctx, officer, dto.InquiryID, PatchInput{Status: &reviewed, Notes: &notes})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.Status != "REVIEWED" || got.Notes != "asked for salary slips" || got.ReviewedBy == nil || *got.ReviewedBy != officer.ID {
		t.Fatalf("unexpected patch result: %+v", got)
	}

	archived, converted := "ARCHIVED", "CONVERTED"
	if _, err := f.uc.Patch(ctx, officer, dto.InquiryID, PatchInput{Status: &archived}); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := f.uc.Patch(ctx, officer, dto.InquiryID, PatchInput{Status: &converted}); !errors.Is(err, domain.ErrClosed) {
		t.Fatalf("want ErrClosed, got %v", err)
	}
	// notes stay editable on a closed inquiry
	more := "duplicate lead"
	if _, err := f.uc.Patch(ctx, officer, dto.InquiryID, PatchInput{Notes: &more}); err != nil {
		t.Fatalf("notes on archived: %v", err)
	}
	if saves != 3 {
		t.Fatalf("saves = %d, want 3", saves)
	}

	if _, err := f.uc.Patch(ctx, officer, dto.InquiryID, PatchInput{}); !errors.Is(err, domain.ErrNothingToPatch) {
		t.Fatalf("want ErrNothingToPatch, got %v", err)
	}
	bogus := "LOST"
	if _, err := f.uc.Patch(ctx, officer, dto.InquiryID, PatchInput{Status: &bogus}); !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("want ErrUnknownStatus, got %v", err)
	}
	if _, err := f.uc.Patch(ctx, officer, "nope", PatchInput{Notes: &more}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
