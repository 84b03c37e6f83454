package source

import (
	"context"
	"io"

	"github.com/paisaflow/paisaflow/internal/model"
)

// SliceSource yields an in-memory batch of messages. Used by tests and
// programmatic callers.
type SliceSource struct {
	messages []model.RawMessage
	pos      int
}

// NewSliceSource creates a source over the given messages.
func NewSliceSource(messages ...model.RawMessage) *SliceSource {
	return &SliceSource{messages: messages}
}

// Count returns the number of messages in the batch.
func (s *SliceSource) Count() int {
	return len(s.messages)
}

// Next yields the next message, or io.EOF once exhausted.
func (s *SliceSource) Next(ctx context.Context) (*model.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.messages) {
		return nil, io.EOF
	}
	msg := s.messages[s.pos]
	s.pos++
	return &msg, nil
}
