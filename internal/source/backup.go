// Package source provides the message-source implementations that feed the
// pipeline, either as a bounded historical batch or a live feed.
package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paisaflow/paisaflow/internal/model"
)

// smsBackup mirrors the SMS backup XML schema: a <smses> root with one
// <sms> element per message, dates in epoch milliseconds.
type smsBackup struct {
	XMLName  xml.Name    `xml:"smses"`
	Messages []backupSMS `xml:"sms"`
}

type backupSMS struct {
	Address string `xml:"address,attr"`
	Date    string `xml:"date,attr"`
	Body    string `xml:"body,attr"`
}

// BackupSource yields messages from an SMS backup XML file as a bounded
// historical batch.
type BackupSource struct {
	messages []model.RawMessage
	pos      int
}

// NewBackupSource reads and parses a backup file. Messages with
// unparseable dates are skipped.
func NewBackupSource(path string) (*BackupSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup smsBackup
	if err := xml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("failed to parse backup file: %w", err)
	}

	messages := make([]model.RawMessage, 0, len(backup.Messages))
	for _, sms := range backup.Messages {
		millis, err := strconv.ParseInt(sms.Date, 10, 64)
		if err != nil {
			continue
		}
		messages = append(messages, model.RawMessage{
			Sender:          sms.Address,
			Body:            sms.Body,
			TimestampMillis: millis,
		})
	}

	return &BackupSource{messages: messages}, nil
}

// Count returns the number of messages in the batch.
func (s *BackupSource) Count() int {
	return len(s.messages)
}

// Next yields the next message, or io.EOF once the batch is exhausted.
func (s *BackupSource) Next(ctx context.Context) (*model.RawMessage, error) {
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
