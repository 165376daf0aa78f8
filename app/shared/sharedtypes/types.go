package sharedtypes

// HoleCount is fixed for every event; the importer rejects anything else.
const HoleCount = 18

// EventID identifies a club event (league night, tournament day).
type EventID string

func (id EventID) String() string {
	return string(id)
}

// MemberID identifies a registered club member.
type MemberID string

func (id MemberID) String() string {
	return string(id)
}
