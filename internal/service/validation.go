// Package service implements the forum's business rules on top of the repositories.
package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"simpleforum/internal/models"
)

const (
	maxNameLen        = 255
	maxTopicLen       = 300
	maxDescriptionLen = 50000
	maxTextLen        = 10000
)

// ListInput selects one page of a filtered listing.
type ListInput struct {
	Like    string
	PageNum int
	PerPage int
}

func requireText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return models.NewValidationError(field + " is required")
	}
	return limitText(field, value, maxLen)
}

func limitText(field, value string, maxLen int) error {
	if utf8.RuneCountInString(value) > maxLen {
		return models.NewValidationError(fmt.Sprintf("%s too long (max %d characters)", field, maxLen))
	}
	return nil
}

func pageDefaults(in ListInput) ListInput {
	if in.PageNum == 0 {
		in.PageNum = models.DefaultPageNum
	}
	if in.PerPage == 0 {
		in.PerPage = models.DefaultPerPage
	}
	return in
}
