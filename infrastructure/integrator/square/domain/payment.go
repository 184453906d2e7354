package squaredomain

// Payment statuses that count towards the daily aggregates.
const (
	StatusCompleted = "COMPLETED"
	StatusApproved  = "APPROVED"
)

type Money struct {
	Amount   int64  `json:"amount,omitempty"` // smallest currency unit (cents for USD)
	Currency string `json:"currency,omitempty"`
}

type ProcessingFee struct {
	EffectiveAt string `json:"effective_at,omitempty"`
	Type        string `json:"type,omitempty"`
	AmountMoney *Money `json:"amount_money,omitempty"`
}

// Payment is one payment as returned by the Square Payments API. Only the
// fields used by the daily aggregation are mapped.
type Payment struct {
	ID            string          `json:"id,omitempty"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	AmountMoney   *Money          `json:"amount_money,omitempty"`
	TipMoney      *Money          `json:"tip_money,omitempty"`
	RefundedMoney *Money          `json:"refunded_money,omitempty"`
	TotalMoney    *Money          `json:"total_money,omitempty"`
	ProcessingFee []ProcessingFee `json:"processing_fee,omitempty"`
}

// Counts reports whether the payment belongs in the daily aggregates.
func (p *Payment) Counts() bool {
	return p.Status == StatusCompleted || p.Status == StatusApproved
}
