package models

// StagedFile describes a file picked by the user. Only metadata is kept.
type StagedFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// StagingMessageKind tells which confirmation branch produced a message
type StagingMessageKind string

const (
	StagingMessageReady   StagingMessageKind = "ready"
	StagingMessageMissing StagingMessageKind = "missing"
)

// StagingMessage is the user-visible outcome of confirming a staged file
type StagingMessage struct {
	Kind StagingMessageKind `json:"kind"`
	Text string             `json:"text"`
}
