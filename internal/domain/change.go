package domain

import "time"

// Change is one entry of the data directory change feed.
type Change struct {
	Entity    string    `json:"entity"`
	File      string    `json:"file"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}
