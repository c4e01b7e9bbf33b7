package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"trivia-quiz-service/internal/domain"
)

// PackImporter writes packs into question_packs, replacing any pack with the same id.
type PackImporter struct {
	db *bun.DB
}

func NewPackImporter(db *bun.DB) *PackImporter {
	return &PackImporter{db: db}
}

func (i *PackImporter) Import(ctx context.Context, pack domain.Pack) error {
	if pack.ID == "" {
		return fmt.Errorf("%w: pack has no id", domain.ErrInvalidQuestion)
	}
	pack.Normalize()
	if err := pack.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(pack)
	if err != nil {
		return fmt.Errorf("marshal pack: %w", err)
	}
	_, err = i.db.ExecContext(ctx, `
INSERT INTO question_packs (id, title, data, updated_at) VALUES (?, ?, ?::jsonb, now())
ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		pack.ID, pack.Title, string(data))
	if err != nil {
		return fmt.Errorf("import pack %q: %w", pack.ID, err)
	}
	return nil
}
