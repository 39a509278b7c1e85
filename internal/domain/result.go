package domain

// InsertResult mirrors the store's acknowledgment of a single insert.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult mirrors the store's acknowledgment of an update.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the store's acknowledgment of a delete.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
