package entity

import "time"

// Attachment records metadata for an uploaded file. The bytes live on disk
// at Filepath.
type Attachment struct {
	ID         int       `json:"id"`
	Filename   string    `json:"filename"`
	Filepath   string    `json:"filepath"`
	IssueID    int       `json:"issueId"`
	UploaderID int       `json:"uploaderId"`
	CreatedAt  time.Time `json:"createdAt"`
}
