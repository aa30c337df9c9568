package models

// ReferralStatus is the overall state of a referral.
type ReferralStatus string

const (
	ReferralPending    ReferralStatus = "Pending"
	ReferralInProgress ReferralStatus = "In Progress"
	ReferralCompleted  ReferralStatus = "Completed"
	ReferralCancelled  ReferralStatus = "Cancelled"
)

var referralTransitions = map[ReferralStatus][]ReferralStatus{
	ReferralPending:    {ReferralInProgress, ReferralCompleted, ReferralCancelled},
	ReferralInProgress: {ReferralCompleted, ReferralCancelled},
	ReferralCompleted:  {},
	ReferralCancelled:  {},
}

// Valid reports whether s is one of the known referral statuses.
func (s ReferralStatus) Valid() bool {
	_, ok := referralTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-asserting the current status is always allowed.
func (s ReferralStatus) CanTransitionTo(next ReferralStatus) bool {
	if s == next {
		return true
	}
	for _, t := range referralTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// DetailStatus is the per-contractor state within a referral.
type DetailStatus string

const (
	DetailReferred   DetailStatus = "Referred"
	DetailContacted  DetailStatus = "Contacted"
	DetailScheduled  DetailStatus = "Scheduled"
	DetailEstimated  DetailStatus = "Estimated"
	DetailSelected   DetailStatus = "Selected"
	DetailInProgress DetailStatus = "InProgress"
	DetailCompleted  DetailStatus = "Completed"
)

// detailRank orders detail statuses along the referral lifecycle.
// Scheduled and Estimated share a rank; a detail may move between them
// but never backwards.
var detailRank = map[DetailStatus]int{
	DetailReferred:   0,
	DetailContacted:  1,
	DetailScheduled:  2,
	DetailEstimated:  2,
	DetailSelected:   3,
	DetailInProgress: 4,
	DetailCompleted:  5,
}

// Valid reports whether s is one of the known detail statuses.
func (s DetailStatus) Valid() bool {
	_, ok := detailRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Transitions are forward-only; skipping intermediate steps is fine
// (a contractor can go straight from Referred to Scheduled), but
// equal-rank moves are only allowed between Scheduled and Estimated.
func (s DetailStatus) CanTransitionTo(next DetailStatus) bool {
	cur, ok := detailRank[s]
	if !ok {
		return false
	}
	nxt, ok := detailRank[next]
	if !ok {
		return false
	}
	if s == next {
		return true
	}
	if cur == nxt {
		return (s == DetailScheduled && next == DetailEstimated) ||
			(s == DetailEstimated && next == DetailScheduled)
	}
	return nxt > cur
}
