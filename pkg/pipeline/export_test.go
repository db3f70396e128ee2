package pipeline

// Expose internals for white-box tests
var (
	FilterOff         = filterOff
	GroupMessages     = groupMessages
	ResolveDate       = resolveDate
	Classify          = classify
	GroupParticipants = groupParticipants
)
