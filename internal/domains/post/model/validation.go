package model

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/shared/validator"
)

const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldCategory = "category"
	FieldSummary  = "summary"

	msgContentLength = "Post content must be at least 250 characters."
	msgSummaryLength = "Post summary must be 250 characters or fewer."
	msgCategory      = "Post category must be Fiction or Non-Fiction."
	msgTitle         = "Post title must contain a clickbait phrase."
)

// Lengths are counted in runes
var (
	contentRules = []validation.Rule{
		validation.Required.Error(msgContentLength),
		validation.RuneLength(MinContentLength, 0).Error(msgContentLength),
	}
	summaryRules = []validation.Rule{
		validation.RuneLength(0, MaxSummaryLength).Error(msgSummaryLength),
	}
	categoryRules = []validation.Rule{
		validation.Required.Error(msgCategory),
		validation.In(CategoryFiction, CategoryNonFiction).Error(msgCategory),
	}
	titleRules = []validation.Rule{
		validation.Required.Error(msgTitle),
		validation.By(containsClickbait),
	}
)

func ValidateTitle(title string) error {
	return validator.Field(context.Background(), FieldTitle, title, titleRules...)
}

func ValidateContent(content string) error {
	return validator.Field(context.Background(), FieldContent, content, contentRules...)
}

// ValidateSummary accepts an absent summary
func ValidateSummary(summary *string) error {
	if summary == nil {
		return nil
	}
	return validator.Field(context.Background(), FieldSummary, *summary, summaryRules...)
}

func ValidateCategory(category string) error {
	return validator.Field(context.Background(), FieldCategory, category, categoryRules...)
}

func containsClickbait(value interface{}) error {
	title, _ := value.(string)
	for _, phrase := range ClickbaitPhrases {
		if strings.Contains(title, phrase) {
			return nil
		}
	}
	return validation.NewError("post_title_clickbait", msgTitle)
}
