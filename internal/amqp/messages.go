package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

const (
	EventCreated = "transaction.created"
	EventDeleted = "transaction.deleted"
)

// LedgerEvent announces a confirmed ledger mutation. Deleted events carry
// only the category and id.
type LedgerEvent struct {
	Type      string           `json:"type"`
	Category  core.Category    `json:"category"`
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Date      string           `json:"date,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewCreatedEvent(category core.Category, tx core.Transaction) *LedgerEvent {
	amount := tx.Amount
	return &LedgerEvent{
		Type:      EventCreated,
		Category:  category,
		ID:        tx.ID,
		Name:      tx.Name,
		Amount:    &amount,
		Date:      tx.Date.String(),
		Timestamp: time.Now().UTC(),
	}
}

func NewDeletedEvent(category core.Category, id string) *LedgerEvent {
	return &LedgerEvent{
		Type:      EventDeleted,
		Category:  category,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes and sanity-checks a message body.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	switch e.Type {
	case EventCreated, EventDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.ID == "" {
		return nil, fmt.Errorf("event without id")
	}
	return &e, nil
}
