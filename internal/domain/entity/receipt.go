package entity

import "strings"

// Default values substituted for missing fields. The upstream POS screens
// enforce no schema version, so the print subsystem coerces defensively.
const (
	DefaultItemName     = "Item"
	DefaultCashierName  = "Admin"
	DefaultCustomerName = "Customer"
)

// LineItem is a single line on a receipt. Lines with Quantity <= 0 are
// skipped by the formatter without error.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// ReceiptData is the printable receipt supplied by the POS transaction
// screens. It is a value object, not a stored record. The formatter does
// not enforce total == subtotal - discount + tax; that is the caller's
// responsibility.
type ReceiptData struct {
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	CashierName   string     `json:"cashierName"`
	CustomerName  string     `json:"customerName,omitempty"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount,omitempty"`
	Tax           float64    `json:"tax,omitempty"`
	Total         float64    `json:"total"`
	AmountPaid    float64    `json:"amountPaid"`
	Change        float64    `json:"change"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
}

// Normalize fills missing string fields with their documented defaults.
// Numeric coercion (negative or NaN amounts render as zero) happens in the
// currency formatter.
func (r *ReceiptData) Normalize() {
	if strings.TrimSpace(r.CashierName) == "" {
		r.CashierName = DefaultCashierName
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		r.CustomerName = DefaultCustomerName
	}
	for i := range r.Items {
		if strings.TrimSpace(r.Items[i].Name) == "" {
			r.Items[i].Name = DefaultItemName
		}
	}
}

// IsCash reports whether the payment method counts as cash. An empty
// method is treated as cash, matching the POS default payment flow.
func (r *ReceiptData) IsCash() bool {
	switch strings.ToLower(strings.TrimSpace(r.PaymentMethod)) {
	case "", "cash", "tunai":
		return true
	}
	return false
}
