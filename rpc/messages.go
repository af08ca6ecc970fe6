package rpc

// PollRequest asks the remote platform for its current value, in the
// safe-polling contract's vocabulary (spec §6).
type PollRequest struct {
	SourceID string `json:"source_id"`
}

// PollResponse carries the platform's current value as a decimal string
// (platforms report fractional quantities; adapter.ParseQuantity converts
// at the boundary, see adapter/quantity.go) and the ordering tag the caller
// should attach to any Observation built from it.
type PollResponse struct {
	Value          string `json:"value"`
	SequenceNumber uint64 `json:"sequence_number"`
}

// WriteRequest is a guarded write: the platform commits iff its current
// value still equals GuardValue (spec §6, "Safe-polling platform
// contract"). Values are decimal strings for the same reason PollResponse's
// is — see adapter.FormatQuantity.
type WriteRequest struct {
	SourceID   string `json:"source_id"`
	NewValue   string `json:"new_value"`
	GuardValue string `json:"guard_value"`
}

// WriteResponse reports whether the write committed; if not, Current holds
// what the platform actually had, so the caller can reuse it as the "old"
// side of the next reported transition.
type WriteResponse struct {
	Committed bool   `json:"committed"`
	Current   string `json:"current"`
}
