package embedding

import "time"

// Record is an embedding row as stored: the vector is kept as JSON text in
// the database and decoded on the way out.
type Record struct {
	ID         int
	UserID     int
	VectorText string
	ModelName  string
	CreatedAt  time.Time
}

// Embedding is the decoded form handed to callers.
type Embedding struct {
	ID        int
	UserID    int
	Vector    []float64
	ModelName string
	CreatedAt time.Time
}
