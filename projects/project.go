package projects

import "time"

// ChatMessage is one message of a design conversation.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

// FileNode is an entry of the virtual file system produced by the generator.
type FileNode struct {
	Type    string `json:"type"` // "file" or "directory"
	Name    string `json:"name,omitempty"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
}

// FileSystemData maps a path to its node.
type FileSystemData map[string]FileNode

// Project is a saved, named unit of work owned by a user account.
type Project struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	OwnerID   string         `json:"ownerId,omitempty"`
	Messages  []ChatMessage  `json:"messages"`
	Data      FileSystemData `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CreateRequest holds what a caller supplies for a new project.
type CreateRequest struct {
	Name     string         `json:"name"`
	Messages []ChatMessage  `json:"messages"`
	Data     FileSystemData `json:"data"`
}

// Normalised returns a copy with nil collections replaced by empty ones.
func (r CreateRequest) Normalised() CreateRequest {
	if r.Messages == nil {
		r.Messages = []ChatMessage{}
	}
	if r.Data == nil {
		r.Data = FileSystemData{}
	}
	return r
}
