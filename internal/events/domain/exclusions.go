package domain

// Exclusions holds the event kinds and admin operation types suppressed from
// logging and downstream reaction. It is built once at startup and only read
// afterwards, so concurrent use needs no locking. Empty sets suppress
// nothing.
type Exclusions struct {
	events     map[EventType]struct{}
	operations map[OperationType]struct{}
}

// NewExclusions builds an Exclusions value from the configured kind names.
func NewExclusions(eventTypes, operationTypes []string) Exclusions {
	x := Exclusions{
		events:     make(map[EventType]struct{}, len(eventTypes)),
		operations: make(map[OperationType]struct{}, len(operationTypes)),
	}
	for _, t := range eventTypes {
		x.events[EventType(t)] = struct{}{}
	}
	for _, t := range operationTypes {
		x.operations[OperationType(t)] = struct{}{}
	}
	return x
}

// ProcessEvent reports whether a user event of the given type should be
// processed. It returns false only when the type is excluded.
func (x Exclusions) ProcessEvent(t EventType) bool {
	_, excluded := x.events[t]
	return !excluded
}

// ProcessOperation reports whether an admin event with the given operation
// type should be processed.
func (x Exclusions) ProcessOperation(t OperationType) bool {
	_, excluded := x.operations[t]
	return !excluded
}
