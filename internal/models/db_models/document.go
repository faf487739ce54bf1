package db_models

import (
	"github.com/pgvector/pgvector-go"
)

// Document is one embedded chunk of the learning knowledge base.
type Document struct {
	BaseModel
	Title     string
	Content   string `gorm:"type:text"`
	Topic     string `gorm:"index"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}

// DocumentMatch is a Document row scanned together with its similarity to a
// query vector.
type DocumentMatch struct {
	Title      string
	Content    string
	Topic      string
	Similarity float64
}
