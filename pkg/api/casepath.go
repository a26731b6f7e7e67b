package api

// CasePath is a partial, invertible mapping between an event sum type E and
// the payload type P of one of its variants.
//
// Extract answers "is this event that variant, and if so, what does it
// carry?"; Embed constructs the variant from a payload and never fails.
// For any payload p, Extract(Embed(p)) yields (p, true).
type CasePath[E, P any] struct {
	embed   func(P) E
	extract func(E) (P, bool)
}

// NewCasePath builds a CasePath from an embed/extract pair.
func NewCasePath[E, P any](embed func(P) E, extract func(E) (P, bool)) CasePath[E, P] {
	if embed == nil {
		panic("reflow: case path requires a non-nil embed function")
	}
	if extract == nil {
		panic("reflow: case path requires a non-nil extract function")
	}
	return CasePath[E, P]{embed: embed, extract: extract}
}

// Embed constructs the event variant from a payload.
func (c CasePath[E, P]) Embed(payload P) E {
	return c.embed(payload)
}

// Extract returns the payload and true if event is the variant this path
// describes, and the zero payload and false otherwise.
func (c CasePath[E, P]) Extract(event E) (P, bool) {
	return c.extract(event)
}

// Variant returns a CasePath for the common Go encoding of sum types, where
// E is an interface and each variant is a concrete type implementing it.
// The variant value is its own payload.
//
// Example:
//
//	type counterEvent interface{ isCounterEvent() }
//	type tickReceived struct{ N int }
//
//	path := api.Variant[tickReceived, counterEvent]()
//	ev := path.Embed(tickReceived{N: 1})
//
// Variant panics at Embed time if V does not implement E; that is a
// construction error, not a runtime condition.
func Variant[V, E any]() CasePath[E, V] {
	return CasePath[E, V]{
		embed: func(v V) E {
			return any(v).(E)
		},
		extract: func(e E) (V, bool) {
			v, ok := any(e).(V)
			return v, ok
		},
	}
}
