package domain

// Pending overlays a draft value on top of the last value confirmed by the
// store. The draft is shown until a snapshot arrives that equals it.
type Pending[T any] struct {
	confirmed T
	draft     *T
	equal     func(a, b T) bool
}

// NewPending creates an overlay around an initial confirmed value.
func NewPending[T any](confirmed T, equal func(a, b T) bool) *Pending[T] {
	return &Pending[T]{confirmed: confirmed, equal: equal}
}

// Propose records a draft awaiting confirmation.
func (p *Pending[T]) Propose(v T) {
	p.draft = &v
}

// Observe feeds the latest store value. It returns true when an outstanding
// draft was confirmed by it.
func (p *Pending[T]) Observe(v T) bool {
	p.confirmed = v
	if p.draft != nil && p.equal(*p.draft, v) {
		p.draft = nil
		return true
	}
	return false
}

// Discard drops the draft, e.g. after the write failed.
func (p *Pending[T]) Discard() {
	p.draft = nil
}

// Value returns the draft if one is outstanding, else the confirmed value.
func (p *Pending[T]) Value() T {
	if p.draft != nil {
		return *p.draft
	}
	return p.confirmed
}

// Confirmed returns the last value observed from the store.
func (p *Pending[T]) Confirmed() T {
	return p.confirmed
}

// IsPending reports whether a draft is waiting for confirmation.
func (p *Pending[T]) IsPending() bool {
	return p.draft != nil
}
