package models

// Default page parameters shared by list endpoints.
const (
	DefaultPageNum = 1
	DefaultPerPage = 25
)

// Page is a bounded slice of a larger result set plus the total matching row count.
type Page[T any] struct {
	Items   []T   `json:"items"`
	PageNum int   `json:"page_num"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// Fields is a sparse update set keyed by column name. Only present keys are written.
type Fields map[string]any

// Set records value under column and returns the receiver for chaining.
func (f Fields) Set(column string, value any) Fields {
	f[column] = value
	return f
}

// SetIfPresent records *value under column when value is non-nil.
func SetIfPresent[T any](f Fields, column string, value *T) {
	if value != nil {
		f[column] = *value
	}
}
