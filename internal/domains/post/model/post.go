package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryFiction    = "Fiction"
	CategoryNonFiction = "Non-Fiction"

	MinContentLength = 250
	MaxSummaryLength = 250
)

// ClickbaitPhrases - a title must contain at least one, case-sensitive
var ClickbaitPhrases = []string{"Won't Believe", "Secret", "Top", "Guess"}

// Post represents a blog post
type Post struct {
	ID uuid.UUID `json:"id" db:"id"`

	Title    string  `json:"title" db:"title"`
	Content  string  `json:"content" db:"content"`
	Category string  `json:"category" db:"category"`
	Summary  *string `json:"summary" db:"summary"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

func (p Post) String() string {
	return fmt.Sprintf("Post(id=%s, title=%s)", p.ID, p.Title)
}
