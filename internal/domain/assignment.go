package domain

// AssignmentResult classifies the outcome of a parking assignment attempt.
// NoCapacity and Contention are expected outcomes, not errors: admission of
// the triggering tenant succeeds regardless.
type AssignmentResult string

const (
	AssignmentAssigned   AssignmentResult = "assigned"
	AssignmentNoCapacity AssignmentResult = "no_capacity"
	AssignmentContention AssignmentResult = "contention"
)

// AssignmentOutcome is the result of an assignment attempt. Space is set
// only when Result is AssignmentAssigned.
type AssignmentOutcome struct {
	Result AssignmentResult
	Space  ParkingSpace
}

// Assigned builds the outcome for a successful (or idempotently repeated)
// assignment.
func Assigned(space ParkingSpace) AssignmentOutcome {
	return AssignmentOutcome{Result: AssignmentAssigned, Space: space}
}

// NotAssigned builds the outcome for an attempt that made no assignment.
func NotAssigned(result AssignmentResult) AssignmentOutcome {
	return AssignmentOutcome{Result: result}
}

// SeedResult classifies the outcome of a bootstrap seeding run.
type SeedResult string

const (
	SeedAlreadySeeded SeedResult = "already_seeded"
	SeedSeeded        SeedResult = "seeded"
	SeedDeferred      SeedResult = "deferred"
)

// SeedOutcome is the result of EnsureSeeded. Reason is set when seeding was
// deferred; a deferred run left no partial writes and is safe to retry.
type SeedOutcome struct {
	Result SeedResult
	Reason string
}
