package itr

import "time"

// ITR is an inspection/test record: a checkable unit of commissioning work
// with a quantity target and a due date. Its status is not stored; it is
// derived at read time relative to the caller's "today".
type ITR struct {
	ID            string    `json:"id"`
	ActivityID    string    `json:"activity_id"`
	Description   string    `json:"description"`
	QuantityTotal int       `json:"quantity_total"`
	QuantityDone  int       `json:"quantity_done"`
	DueDate       time.Time `json:"due_date"`
	MCC           bool      `json:"mcc"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
