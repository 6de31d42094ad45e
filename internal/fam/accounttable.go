package fam

// AccountTable is the account map plus insertion order, so diagnostics
// and Engine.Compute iteration are stable (spec.md §4.8 point 6).
type AccountTable struct {
	byID  map[AccountId]Account
	order []AccountId
}

// NewAccountTable builds an empty table.
func NewAccountTable() *AccountTable {
	return &AccountTable{byID: make(map[AccountId]Account)}
}

// Set replaces the account table wholesale, preserving the given order.
func (t *AccountTable) Set(accounts []Account) {
	t.byID = make(map[AccountId]Account, len(accounts))
	t.order = make([]AccountId, 0, len(accounts))
	for _, a := range accounts {
		t.byID[a.ID] = a.clone()
		t.order = append(t.order, a.ID)
	}
}

// Ensure inserts a account if absent, and is a no-op otherwise. Returns
// true if it was inserted.
func (t *AccountTable) Ensure(a Account) bool {
	if _, ok := t.byID[a.ID]; ok {
		return false
	}
	t.byID[a.ID] = a.clone()
	t.order = append(t.order, a.ID)
	return true
}

// Get returns the account with id aid.
func (t *AccountTable) Get(aid AccountId) (Account, bool) {
	a, ok := t.byID[aid]
	return a, ok
}

// Has reports whether aid is present.
func (t *AccountTable) Has(aid AccountId) bool {
	_, ok := t.byID[aid]
	return ok
}

// All returns accounts in insertion order.
func (t *AccountTable) All() []Account {
	out := make([]Account, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

// Order returns the account ids in insertion order.
func (t *AccountTable) Order() []AccountId {
	return append([]AccountId(nil), t.order...)
}
