package model

import "time"

// Comment represents a comment on an event as stored. The author is held
// as a user record id and resolved to a MemberRef projection on read.
type Comment struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"createdOn"`
}

// CommentDetail is the API projection of a comment with the author
// resolved to an {id, name} pair.
type CommentDetail struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event"`
	User      MemberRef `json:"user"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"createdOn"`
}

// Detail builds the resolved projection of a comment
func (c *Comment) Detail(user MemberRef) *CommentDetail {
	return &CommentDetail{
		ID:        c.ID,
		EventID:   c.EventID,
		User:      user,
		Text:      c.Text,
		CreatedOn: c.CreatedOn,
	}
}
