package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Order is a customer order with its payment and reservation details.
type Order struct {
	OrderID           int64     `json:"orderID"`
	PaymentMode       string    `json:"paymentMode" validate:"required"`
	OrderCreationTime time.Time `json:"orderCreationTime"`
	Reservation       time.Time `json:"reservation"`
	Comment           *string   `json:"comment,omitempty" validate:"omitempty,min=2,max=500"`
	Version           int64     `json:"version"`
}

// OrderLine is a quantity of one product within an order.
type OrderLine struct {
	OrderLineID int64  `json:"orderLineID"`
	Quantity    int    `json:"quantity" validate:"min=1,max=50"`
	ProductID   Ref    `json:"productID"`
	OrderID     *int64 `json:"orderID,omitempty" validate:"omitempty,gt=0"`
	Version     int64  `json:"version"`
}

// Ref points at another entity by identifier. It is written as {"id":N} and
// accepts either that form or a bare number.
type Ref struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] != '{' {
		if err := json.Unmarshal(data, &r.ID); err != nil {
			return fmt.Errorf("reference id: %w", err)
		}
		return nil
	}

	var obj struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	r.ID = obj.ID
	return nil
}
