package memstore

import (
	"testing"

	"github.com/yungbote/studynotes-backend/internal/data/repos/testutil"
	"github.com/yungbote/studynotes-backend/internal/domain"
)

func TestRateLeavesOtherFieldsAlone(t *testing.T) {
	ctx := t.Context()
	r := newNoteRepo(testutil.Logger(t), testutil.Options())
	r.c.put("n1", &domain.Note{
		ID:          "n1",
		OwnerID:     "owner",
		Content:     "c",
		Category:    "legacy",
		Tags:        []string{},
		Marketplace: domain.NoteMarketplace{IsPublic: true},
	})

	rated, err := r.Rate(ctx, "n1", 4)
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rated.Marketplace.Rating != 4 || rated.Marketplace.RatingCount != 1 {
		t.Fatalf("Rate: got %+v", rated.Marketplace)
	}
	if rated.Category != "legacy" {
		t.Fatalf("Rate: category rewritten to %q", rated.Category)
	}
}
