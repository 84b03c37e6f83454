package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paisaflow/paisaflow/internal/model"
)

// FeedSource yields messages from a JSON-lines stream, one message object
// per line, for live one-at-a-time arrivals.
type FeedSource struct {
	scanner *bufio.Scanner
}

// NewFeedSource creates a feed source over the given reader.
func NewFeedSource(r io.Reader) *FeedSource {
	return &FeedSource{scanner: bufio.NewScanner(r)}
}

type feedLine struct {
	Sender          string `json:"sender"`
	Body            string `json:"body"`
	TimestampMillis int64  `json:"timestampMillis"`
}

// Next yields the next message from the stream, skipping blank lines, or
// io.EOF once the stream closes.
func (s *FeedSource) Next(ctx context.Context) (*model.RawMessage, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read feed: %w", err)
			}
			return nil, io.EOF
		}

		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var parsed feedLine
		if err := json.Unmarshal(line, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse feed line: %w", err)
		}

		return &model.RawMessage{
			Sender:          parsed.Sender,
			Body:            parsed.Body,
			TimestampMillis: parsed.TimestampMillis,
		}, nil
	}
}
