// internal/domain/entity/notification.go
package entity

// NotificationRule tags the rule that produced a candidate. The tag is used
// both for display and for the cascade's fixed priority ordering.
type NotificationRule string

const (
	RuleSpecialLivery NotificationRule = "Special Livery"
	RuleRarePlane     NotificationRule = "Rare Plane/Airline"
	RuleRegoWatchlist NotificationRule = "Watchlist Registration"
	RuleTypeWatchlist NotificationRule = "Watchlist Aircraft Type"
	RuleStatusChange  NotificationRule = "Status Change"
)

// NotificationCandidate is a rule's proposal to notify the operator about
// one arrival snapshot.
type NotificationCandidate struct {
	Snapshot     *ArrivalSnapshot
	Registration string
	Rule         NotificationRule
}
