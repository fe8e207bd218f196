package store

import (
	"context"
	"testing"
)

func TestMemoryStoreOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	champs := []Champion{
		{Name: "b", Score: 10, PlayTimeS: 5},
		{Name: "a", Score: 10, PlayTimeS: 5},
		{Name: "c", Score: 20, PlayTimeS: 1},
	}
	for _, c := range champs {
		if err := s.Save(ctx, c); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	top, err := s.Top(ctx, 0, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 champions, got %d", len(top))
	}
	if top[0].Name != "c" {
		t.Fatalf("expected highest score first, got %+v", top[0])
	}
	if top[1].Name != "a" || top[2].Name != "b" {
		t.Fatalf("expected tie broken by name, got %+v then %+v", top[1], top[2])
	}
}

func TestMemoryStorePagination(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Save(ctx, Champion{Name: "p", Score: i})
	}
	page, err := s.Top(ctx, 2, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
}
