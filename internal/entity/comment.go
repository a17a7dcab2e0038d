package entity

import "time"

// Comment is immutable once created and belongs to exactly one issue.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	IssueID   int       `json:"issueId"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Comment) Validate() error {
	if c.Content == "" {
		return Invalid("content is required")
	}
	if c.UserID == 0 {
		return Invalid("userId is required")
	}
	return nil
}
