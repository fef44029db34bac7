package inquiry

import "context"

type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, q *Inquiry) error
	Save(ctx context.Context, q *Inquiry) error
	GetByInquiryID(ctx context.Context, inquiryID string) (*Inquiry, error)
	List(ctx context.Context, f ListFilter) ([]Inquiry, int64, error)
}

// MobileVerifier answers whether a mobile passed OTP verification recently.
// A positive answer is single use.
type MobileVerifier interface {
	ConsumeVerified(ctx context.Context, mobile string) (bool, error)
}
