package fam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountTableSetAndOrder(t *testing.T) {
	at := NewAccountTable()
	at.Set([]Account{
		{ID: "revenue"},
		{ID: "cogs"},
		{ID: "gross_profit"},
	})

	assert.Equal(t, []AccountId{"revenue", "cogs", "gross_profit"}, at.Order())

	a, ok := at.Get("cogs")
	assert.True(t, ok)
	assert.Equal(t, AccountId("cogs"), a.ID)

	_, ok = at.Get("missing")
	assert.False(t, ok)
}

func TestAccountTableEnsureIsIdempotent(t *testing.T) {
	at := NewAccountTable()
	at.Set([]Account{{ID: "a"}})

	inserted := at.Ensure(Account{ID: "b", IsCredit: true})
	assert.True(t, inserted)

	inserted = at.Ensure(Account{ID: "b", IsCredit: false})
	assert.False(t, inserted)

	b, _ := at.Get("b")
	assert.True(t, b.IsCredit, "Ensure must not overwrite an existing account")
	assert.Equal(t, []AccountId{"a", "b"}, at.Order())
}

func TestAccountClonePreservesPointerFields(t *testing.T) {
	sheet := SheetPL
	at := NewAccountTable()
	at.Set([]Account{{ID: "a", Sheet: &sheet}})

	sheet = SheetBS // mutate the original pointer's target after Set

	a, _ := at.Get("a")
	assert.Equal(t, SheetPL, *a.Sheet, "clone must copy the pointed-to value, not just the pointer")
}
