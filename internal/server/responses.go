package server

import (
	"time"

	"simpleforum/internal/models"
)

// sectionTimeLayout renders section timestamps as DD.MM.YYYY HH:MM:SS.
const sectionTimeLayout = "02.01.2006 15:04:05"

// SectionResponse is the wire form of a section.
type SectionResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func formatSectionTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(sectionTimeLayout)
}

func newSectionResponse(s *models.Section) SectionResponse {
	return SectionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   formatSectionTime(s.CreatedAt),
		UpdatedAt:   formatSectionTime(s.UpdatedAt),
	}
}

func newSectionPage(p *models.Page[models.Section]) models.Page[SectionResponse] {
	items := make([]SectionResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, newSectionResponse(&p.Items[i]))
	}
	return models.Page[SectionResponse]{
		Items:   items,
		PageNum: p.PageNum,
		PerPage: p.PerPage,
		Total:   p.Total,
	}
}

// withComments guarantees that a post response carries a comments array.
func withComments(p *models.PostWithComments) *models.PostWithComments {
	if p.Comments == nil {
		p.Comments = []models.CommentWithChildren{}
	}
	return p
}

// withChildren guarantees that a comment response carries a children array.
func withChildren(c *models.CommentWithChildren) *models.CommentWithChildren {
	if c.Children == nil {
		c.Children = []uint{}
	}
	return c
}
