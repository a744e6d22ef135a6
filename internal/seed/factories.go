package seed

import (
	"strings"

	"simpleforum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// factory builds unsaved entities from a seeded faker.
type factory struct {
	faker *gofakeit.Faker
}

func newFactory(faker *gofakeit.Faker) *factory {
	return &factory{faker: faker}
}

func (f *factory) section() models.Section {
	return models.Section{
		Name:        f.faker.Hobby(),
		Description: f.faker.Sentence(12),
	}
}

func (f *factory) post(sectionID uint) models.Post {
	return models.Post{
		SectionID:   sectionID,
		Topic:       strings.TrimSuffix(f.faker.Question(), "?") + "?",
		Description: f.faker.Paragraph(1, 3, 12, "\n"),
	}
}

func (f *factory) comment(postID uint, parentID *uint) models.Comment {
	return models.Comment{
		PostID:   postID,
		ParentID: parentID,
		Text:     f.faker.Sentence(f.faker.Number(4, 20)),
	}
}

// chance reports true with probability p.
func (f *factory) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return f.faker.Float64Range(0, 1) < p
}
