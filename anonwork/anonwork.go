// Package anonwork holds design work produced before a user signs in.
package anonwork

import (
	"context"

	"github.com/jrsteele09/uigen-server/projects"
)

// Work is the conversation and file system of an anonymous session.
type Work struct {
	Messages       []projects.ChatMessage  `json:"messages"`
	FileSystemData projects.FileSystemData `json:"fileSystemData"`
}

// HasContent reports whether the work is worth keeping: any message, or any
// file system entry other than the root directory.
func (w *Work) HasContent() bool {
	if w == nil {
		return false
	}
	if len(w.Messages) > 0 {
		return true
	}
	for path := range w.FileSystemData {
		if path != "/" {
			return true
		}
	}
	return false
}

// Store keeps anonymous drafts keyed by a draft ID.
type Store interface {
	// Get returns the draft, or nil when none is stored
	Get(ctx context.Context, draftID string) (*Work, error)

	// Save replaces the draft
	Save(ctx context.Context, draftID string, work Work) error

	// Clear removes the draft; clearing a missing draft is not an error
	Clear(ctx context.Context, draftID string) error
}
