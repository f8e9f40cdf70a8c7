package amqp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
)

func TestCreatedEventCarriesRecord(t *testing.T) {
	tx := core.Transaction{
		ID:     "abc",
		Name:   "Taxi",
		Amount: core.MustParseAmount("8200"),
		Date:   core.MustParseDate("2026-02-09"),
	}
	event := NewCreatedEvent(core.Expense, tx)

	body, err := event.ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, EventCreated, raw["type"])
	assert.Equal(t, "expense", raw["category"])
	assert.Equal(t, "abc", raw["id"])
	assert.Equal(t, "Taxi", raw["name"])
	assert.Equal(t, "8200", raw["amount"])
	assert.Equal(t, "2026-02-09", raw["date"])
	assert.NotEmpty(t, raw["timestamp"])
}

func TestDeletedEventOmitsRecordFields(t *testing.T) {
	body, err := NewDeletedEvent(core.Income, "xyz").ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, EventDeleted, raw["type"])
	assert.NotContains(t, raw, "amount")
	assert.NotContains(t, raw, "name")

	decoded, err := LedgerEventFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, core.Income, decoded.Category)
	assert.Equal(t, "xyz", decoded.ID)
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"type":"transaction.moved","id":"a"}`,
		`{"type":"transaction.created"}`,
	} {
		_, err := LedgerEventFromJSON([]byte(body))
		assert.Error(t, err, body)
	}
}
