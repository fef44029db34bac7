package customer

import "time"

type CreateCustomerInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Country  string
	BranchID string
}

// UpdateCustomerInput replaces every editable field; all are required.
type UpdateCustomerInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Country  string
	BranchID string
}

type CustomerDTO struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	BranchID   string    `json:"branch_id"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
