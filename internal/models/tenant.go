package models

import "time"

type Tenant struct {
	ID            int       `json:"id"`
	PGID          int       `json:"pg_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	IDProof       string    `json:"id_proof"`
	RoomID        int       `json:"room_id"` // 0 = no room allocated
	BedID         int       `json:"bed_id"`  // 0 = no bed allocated
	MonthlyRent   float64   `json:"monthly_rent"`
	RentCycleType string    `json:"rent_cycle_type"` // MONTHLY or WEEKLY
	MoveInDate    time.Time `json:"move_in_date"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TenantSummary is the aggregate view the dashboard and payment screens read:
// the tenant plus derived rent/advance flags and due amounts.
type TenantSummary struct {
	Tenant           *Tenant  `json:"tenant"`
	IsRentPaid       bool     `json:"is_rent_paid"`
	IsRentPartial    bool     `json:"is_rent_partial"`
	IsAdvancePaid    bool     `json:"is_advance_paid"`
	RentDueAmount    float64  `json:"rent_due_amount"`
	PartialDueAmount float64  `json:"partial_due_amount"`
	PendingDueAmount float64  `json:"pending_due_amount"`
	UnpaidMonths     []string `json:"unpaid_months"`
}

// CreateTenantRequest represents the request body for creating a tenant
type CreateTenantRequest struct {
	PGID          int     `json:"pg_id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	IDProof       string  `json:"id_proof"`
	BedID         int     `json:"bed_id"`
	MonthlyRent   float64 `json:"monthly_rent"`
	RentCycleType string  `json:"rent_cycle_type"`
	MoveInDate    string  `json:"move_in_date"` // YYYY-MM-DD
}

// UpdateTenantRequest represents the request body for updating a tenant
type UpdateTenantRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	IDProof       string  `json:"id_proof"`
	MonthlyRent   float64 `json:"monthly_rent"`
	RentCycleType string  `json:"rent_cycle_type"`
}
