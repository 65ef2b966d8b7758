package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProjectValidateDateRange(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)
	p := Project{ID: uuid.New(), Name: "Mobile App Development", StartDate: start, EndDate: &before}
	if err := p.Validate(); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	same := start
	p.EndDate = &same
	if err := p.Validate(); err != nil {
		t.Fatalf("expected end == start to be valid, got %v", err)
	}

	p.Progress = 1.5
	if err := p.Validate(); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestTeamMemberValidate(t *testing.T) {
	m := TeamMember{ID: uuid.New(), Name: "  "}
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
	m.Name = "Sarah Johnson"
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTipCatalogCoversEveryCategory(t *testing.T) {
	catalog := TipCatalog()
	if len(catalog) != 10 {
		t.Fatalf("expected 10 tips, got %d", len(catalog))
	}
	seen := make(map[TipCategory]int)
	for _, tip := range catalog {
		if !tip.Category.IsValid() {
			t.Fatalf("invalid category in catalog: %q", tip.Category)
		}
		seen[tip.Category]++
	}
	for _, c := range Categories() {
		if seen[c] != 2 {
			t.Fatalf("expected two tips for %q, got %d", c, seen[c])
		}
	}
}

func TestParseTipCategoryFallback(t *testing.T) {
	if got := ParseTipCategory("Teamwork"); got != TipCategoryTeamwork {
		t.Fatalf("unexpected category: %q", got)
	}
	if got := ParseTipCategory("Mindfulness"); got != TipCategoryProductivity {
		t.Fatalf("expected fallback to Productivity, got %q", got)
	}
}
