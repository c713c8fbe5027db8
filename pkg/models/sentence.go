package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Sentence represents an AI-generated practice sentence together with the
// analysis of which vocabulary words it exercised.
type Sentence struct {
	ID          int    `json:"id" db:"id"`
	Text        string `json:"text" db:"text"`
	Translation string `json:"translation" db:"translation"`
	// UsedWords are the vocabulary entries actually found in Text by the
	// greedy scan, in order of first match.
	UsedWords StringList `json:"used_words" db:"used_words"`
	// UnknownChars are the characters of Text the greedy scan could not
	// consume with any vocabulary entry.
	UnknownChars StringList `json:"unknown_chars" db:"unknown_chars"`
	// UncoveredChars are the characters of Text that appear in no
	// vocabulary entry at all, regardless of scan order.
	UncoveredChars StringList `json:"uncovered_chars" db:"uncovered_chars"`
	Model          string     `json:"model" db:"model"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// StringList stores a list of strings as a JSON-encoded TEXT column.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %v", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}
