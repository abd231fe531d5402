package model

// InsertResult mirrors the persistence insert acknowledgment returned
// to API clients.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult mirrors the persistence update acknowledgment. A zero
// MatchedCount is a successful zero-effect outcome, not an error: it is
// how the API answers updates against a missing id or another owner's
// record without revealing which.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the persistence delete acknowledgment. Deletes
// are idempotent; a zero DeletedCount is still a success.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
