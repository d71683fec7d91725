package model

import "time"

// Verification statuses for a seller account. The status is admin-controlled
// and gates feature access: only verified sellers can publish products or
// receive orders.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Seller is a merchant profile linked to a user account. ParentID makes
// sellers hierarchical for reporting; the reference is by identifier only and
// is not enforced at the storage layer.
type Seller struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	ShopName     string    `json:"shop_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	GSTIN        string    `json:"gstin,omitempty"`
	Verification string    `json:"verification"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Verified reports whether the seller has passed admin verification.
func (s *Seller) Verified() bool {
	return s.Verification == VerificationVerified
}

// ValidVerification reports whether v is a known verification status.
func ValidVerification(v string) bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}
