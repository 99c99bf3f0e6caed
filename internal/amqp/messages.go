package amqp

import (
	"encoding/json"
	"time"
)

// BuildCompletedMessage is published after a site build has been written.
type BuildCompletedMessage struct {
	BuildID      string    `json:"build_id"`
	Year         int       `json:"year"`
	Records      int       `json:"records"`
	Warnings     int       `json:"warnings"`
	PagesWritten int       `json:"pages_written"`
	PagesSkipped int       `json:"pages_skipped"`
	OutputDir    string    `json:"output_dir"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewBuildCompletedMessage stamps a message with the current time.
func NewBuildCompletedMessage(buildID string, year int, outputDir string) *BuildCompletedMessage {
	return &BuildCompletedMessage{
		BuildID:   buildID,
		Year:      year,
		OutputDir: outputDir,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BuildCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BuildCompletedMessageFromJSON creates a message from JSON bytes
func BuildCompletedMessageFromJSON(data []byte) (*BuildCompletedMessage, error) {
	var msg BuildCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
