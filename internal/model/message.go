// Package model defines the core data types shared across the pipeline.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// RawMessage is a single inbound notification as delivered by the device
// message store. It is immutable and consumed exactly once by the pipeline.
type RawMessage struct {
	Sender          string
	Body            string
	TimestampMillis int64
}

// Time returns the message arrival time.
func (m RawMessage) Time() time.Time {
	return time.UnixMilli(m.TimestampMillis)
}

// IdentityHash derives the stable deduplication identity for a message.
// The same (sender, body, timestamp) triple always yields the same id;
// changing any field changes the id.
func (m RawMessage) IdentityHash() string {
	data := fmt.Sprintf("%s|%d|%s", m.Sender, m.TimestampMillis, m.Body)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
