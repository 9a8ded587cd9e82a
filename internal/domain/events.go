package domain

import "time"

// Entity names carried by change events.
const (
	EntityTransaction   = "transaction"
	EntityAccount       = "account"
	EntityLoan          = "loan"
	EntityCategory      = "category"
	EntityBudget        = "budget"
	EntityRecurringRule = "recurring_rule"
	EntityAll           = "all"
)

// Change kinds
const (
	ChangeUpserted = "upserted"
	ChangeDeleted  = "deleted"
	ChangeImported = "imported"
)

// ChangeEvent announces that a committed write changed the record set.
// Readers recompute from a fresh snapshot; the ids are informational.
type ChangeEvent struct {
	Entity string    `json:"entity"`
	Kind   string    `json:"kind"`
	IDs    []string  `json:"ids,omitempty"`
	At     time.Time `json:"at"`
	// Origin identifies the emitting process so it can skip its own events
	// when they come back over a shared channel.
	Origin string `json:"origin,omitempty"`
}
