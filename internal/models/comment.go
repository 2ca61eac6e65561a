package models

import "time"

// Comment log column names.
const (
	CommentColTopic     = "Topic"
	CommentColTimestamp = "Timestamp"
	CommentColComment   = "Comment"

	// CommentTimeLayout is how comment timestamps are written to the sheet.
	CommentTimeLayout = "2006-01-02 15:04:05"
)

// CommentColumns is the column order of the comment log.
var CommentColumns = []string{CommentColTopic, CommentColTimestamp, CommentColComment}

// Comment is one row of the append-only comment log. Missing cells are nil.
type Comment struct {
	Topic     *string `json:"Topic"`
	Timestamp *string `json:"Timestamp"`
	Comment   *string `json:"Comment"`
}

// Time parses Timestamp; ok is false when it is absent or malformed.
func (c Comment) Time() (time.Time, bool) {
	if c.Timestamp == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(CommentTimeLayout, *c.Timestamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TopicIs reports whether the comment belongs to topic.
func (c Comment) TopicIs(topic string) bool {
	return c.Topic != nil && *c.Topic == topic
}
