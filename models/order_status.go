package models

// OrderStatus represents the lifecycle state of a bespoke order
type OrderStatus string

const (
	StatusNew          OrderStatus = "NEW"
	StatusInquiry      OrderStatus = "INQUIRY"
	StatusQuoted       OrderStatus = "QUOTED"
	StatusConfirmed    OrderStatus = "CONFIRMED"
	StatusInProduction OrderStatus = "IN_PRODUCTION"
	StatusFitting      OrderStatus = "FITTING"
	StatusDelivered    OrderStatus = "DELIVERED"
	StatusCancelled    OrderStatus = "CANCELLED"
)

// AllOrderStatuses lists every valid bespoke order status in workflow order.
// DELIVERED and CANCELLED are terminal by convention only: staff may still
// move an order out of them as a manual correction path.
var AllOrderStatuses = []OrderStatus{
	StatusNew,
	StatusInquiry,
	StatusQuoted,
	StatusConfirmed,
	StatusInProduction,
	StatusFitting,
	StatusDelivered,
	StatusCancelled,
}

// IsValid reports whether s is a member of the order status enum
func (s OrderStatus) IsValid() bool {
	for _, status := range AllOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Label returns the customer-facing description of the status
func (s OrderStatus) Label() string {
	switch s {
	case StatusNew:
		return "received"
	case StatusInquiry:
		return "under review"
	case StatusQuoted:
		return "quoted"
	case StatusConfirmed:
		return "confirmed"
	case StatusInProduction:
		return "in production"
	case StatusFitting:
		return "ready for fitting"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	}
	return string(s)
}

// StatusOptions returns the candidate target statuses for an order currently
// in the given status. The workflow does not enforce a forward-only
// sequence, so every status other than the current one is offered.
func StatusOptions(current OrderStatus) []OrderStatus {
	options := make([]OrderStatus, 0, len(AllOrderStatuses)-1)
	for _, status := range AllOrderStatuses {
		if status != current {
			options = append(options, status)
		}
	}
	return options
}
