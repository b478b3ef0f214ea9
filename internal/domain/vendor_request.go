package domain

import "time"

type VendorRequestStatus string

const (
	VendorRequestPending  VendorRequestStatus = "pending"
	VendorRequestApproved VendorRequestStatus = "approved"
	VendorRequestRejected VendorRequestStatus = "rejected"
)

// VendorRequest is a buyer's application to become a vendor. Approval flips
// the requesting user's role in the same transaction.
type VendorRequest struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	ShopName  string              `json:"shopName"`
	Message   string              `json:"message,omitempty"`
	Status    VendorRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
