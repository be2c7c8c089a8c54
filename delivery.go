package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// OutboundMessage is one fully prepared send: target phone in E.164 (or the
// test number), the rendered body, and the assigned counsellor identity.
type OutboundMessage struct {
	Phone      string
	LeadName   string
	Counsellor Counsellor
	Rendered   string
	MediaPath  string
}

// Outcome is the result of one send attempt. Delivered/read only ever
// upgrade a sent result; they are never a downgrade path.
type Outcome struct {
	Status    MessageStatus
	MessageID string
	Category  ErrorCategory
	Detail    string
}

func (o Outcome) Sent() bool {
	return o.Status != StatusFailed
}

func failedOutcome(category ErrorCategory, detail string) Outcome {
	return Outcome{
		Status:   StatusFailed,
		Category: category,
		Detail:   detail,
	}
}

// DeliveryPort is the single capability the orchestrator sends through. The
// backend (templated API or browser automation) is chosen at configuration
// time; orchestration code never branches on which one is active.
type DeliveryPort interface {
	Send(ctx context.Context, msg OutboundMessage) Outcome
}

var (
	imageExtensions    = []string{".jpg", ".jpeg", ".png", ".gif"}
	videoExtensions    = []string{".mp4", ".avi", ".mov"}
	documentExtensions = []string{".pdf", ".doc", ".docx"}
)

// findMediaFiles lists supported files in the media directory, images before
// videos before documents. The first entry is the one that gets sent.
func findMediaFiles(mediaDir string) []string {
	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		Logf("warn", "Media directory not readable: %v", err)
		return nil
	}

	var images, videos, documents []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path, err := filepath.Abs(filepath.Join(mediaDir, entry.Name()))
		if err != nil {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		switch {
		case containsString(imageExtensions, ext):
			images = append(images, path)
		case containsString(videoExtensions, ext):
			videos = append(videos, path)
		case containsString(documentExtensions, ext):
			documents = append(documents, path)
		}
	}

	media := append(images, videos...)
	media = append(media, documents...)
	return media
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
