package memstore_test

import (
	"testing"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/data/repos/memstore"
	"github.com/yungbote/studynotes-backend/internal/data/repos/storetest"
	"github.com/yungbote/studynotes-backend/internal/data/repos/testutil"
	"github.com/yungbote/studynotes-backend/internal/domain"
)

func TestMemStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repos.Store {
		return memstore.New(testutil.Logger(t), testutil.Options())
	})
}

func TestMemStoreReturnsCopies(t *testing.T) {
	ctx := t.Context()
	s := memstore.New(testutil.Logger(t), testutil.Options())
	n, err := s.Notes().Create(ctx, "owner", domain.NewNote{Content: "c", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	n.Tags[0] = "mutated"
	n.Title = "mutated"

	got, err := s.Notes().FindByID(ctx, n.ID, "owner")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Tags[0] != "a" || got.Title == "mutated" {
		t.Fatalf("FindByID: stored note shares state with caller: %+v", got)
	}

	got.Tags = append(got.Tags, "b")
	again, err := s.Notes().FindByID(ctx, n.ID, "owner")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(again.Tags) != 1 {
		t.Fatalf("FindByID: got %d tags want 1", len(again.Tags))
	}
}

func TestMemStoreBackend(t *testing.T) {
	s := memstore.New(testutil.Logger(t), repos.Options{})
	if s.Backend() != memstore.Backend {
		t.Fatalf("Backend: got %q", s.Backend())
	}
	if err := s.Ping(t.Context()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
