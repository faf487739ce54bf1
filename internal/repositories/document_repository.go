package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"devtutor/internal/models/db_models"
)

type DocumentRepository interface {
	Insert(ctx context.Context, document *db_models.Document) error
	SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DocumentMatch, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (d *documentRepository) Insert(ctx context.Context, document *db_models.Document) error {
	return d.db.WithContext(ctx).Create(document).Error
}

// SearchByVector returns the closest documents by cosine similarity,
// descending. Threshold filtering is the caller's concern; the store only
// ranks.
func (d *documentRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DocumentMatch, error) {
	var results []db_models.DocumentMatch

	query := `
        SELECT title, content, topic, (1 - (embedding <=> ?)) AS similarity
        FROM documents
        WHERE deleted_at IS NULL
        ORDER BY embedding <=> ?
        LIMIT ?
    `

	vecStr := vector.String()
	err := d.db.WithContext(ctx).Raw(query, vecStr, vecStr, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
