package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRawMessage_IdentityHash(t *testing.T) {
	base := RawMessage{
		Sender:          "VM-HDFCBK",
		Body:            "Sent Rs.500.00 to SWIGGY*ORDER on 01-01-24. Ref 123456789",
		TimestampMillis: 1704067200000,
	}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, base.IdentityHash(), base.IdentityHash())

		copied := base
		assert.Equal(t, base.IdentityHash(), copied.IdentityHash())
	})

	t.Run("changes with any field", func(t *testing.T) {
		differentSender := base
		differentSender.Sender = "VM-ICICIB"

		differentBody := base
		differentBody.Body = base.Body + "!"

		differentTime := base
		differentTime.TimestampMillis++

		hashes := map[string]bool{
			base.IdentityHash():            true,
			differentSender.IdentityHash(): true,
			differentBody.IdentityHash():   true,
			differentTime.IdentityHash():   true,
		}
		assert.Len(t, hashes, 4, "each variation should produce a distinct id")
	})
}

func TestRawMessage_Time(t *testing.T) {
	msg := RawMessage{TimestampMillis: 1704067200000}
	assert.Equal(t, time.UnixMilli(1704067200000), msg.Time())
}
