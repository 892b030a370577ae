package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
)

// DocumentFilter narrows and orders document listings. Date keys sort
// descending (newest first), text keys ascending.
type DocumentFilter struct {
	Search         string
	Classification string
	SortBy         models.DocumentSortKey
}

type DocumentRepository interface {
	BaseRepository[models.Document]
	ListFiltered(ctx context.Context, f DocumentFilter) ([]models.Document, error)
}

type documentRepository struct {
	BaseRepository[models.Document]
}

func NewDocumentRepository() DocumentRepository {
	return &documentRepository{
		BaseRepository: NewBaseRepository(
			func(d *models.Document) uuid.UUID { return d.ID },
			func(d *models.Document, id uuid.UUID) { d.ID = id },
		),
	}
}

func (r *documentRepository) ListFiltered(ctx context.Context, f DocumentFilter) ([]models.Document, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if !documentMatches(d, f) {
			continue
		}
		out = append(out, d)
	}
	sortDocuments(out, f.SortBy)
	return out, nil
}

// documentMatches searches title, description and tags.
func documentMatches(d models.Document, f DocumentFilter) bool {
	if q := strings.ToLower(f.Search); q != "" {
		hit := strings.Contains(strings.ToLower(d.Title), q) ||
			strings.Contains(strings.ToLower(d.Description), q)
		for _, tag := range d.Tags {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(tag), q)
		}
		if !hit {
			return false
		}
	}
	if f.Classification != "" && f.Classification != "all" && d.Classification != f.Classification {
		return false
	}
	return true
}

func sortDocuments(docs []models.Document, key models.DocumentSortKey) {
	switch key {
	case models.SortByTitle:
		sort.SliceStable(docs, func(i, j int) bool {
			return strings.ToLower(docs[i].Title) < strings.ToLower(docs[j].Title)
		})
	case models.SortBySize:
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].SizeBytes < docs[j].SizeBytes })
	case models.SortByUploadDate:
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].UploadDate.After(docs[j].UploadDate) })
	case models.SortByLastModified:
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].LastModified.After(docs[j].LastModified) })
	}
}
