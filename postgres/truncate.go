package postgres

import (
	"context"

	"gorm.io/gorm"
)

// tables in child-before-parent order so deletes never trip a foreign key.
var dataTables = []string{
	"user_favorites",
	"movie_genres",
	"genres",
	"movies",
	"login_attempts",
	"users",
	"admins",
}

// Truncater implements seed.Truncater: it clears every data row without
// dropping the schema.
type Truncater struct {
	db *gorm.DB
}

// NewTruncater creates a new truncater.
func NewTruncater(db *gorm.DB) *Truncater {
	return &Truncater{db: db}
}

func (t *Truncater) TruncateAll(ctx context.Context) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range dataTables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
