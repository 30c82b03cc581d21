package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/testutil"
)

func newIdeaService() (*IdeaService, *testutil.MockIdeaRepository, *testutil.MockProfileRepository) {
	ideaRepo := testutil.NewMockIdeaRepository()
	profileRepo := testutil.NewMockProfileRepository()
	return NewIdeaService(ideaRepo, NewProfileService(profileRepo)), ideaRepo, profileRepo
}

func TestCreateIdea_StampsOwner(t *testing.T) {
	ideaService, _, _ := newIdeaService()

	ownerID := uuid.New()
	category := domain.Categories[0]
	idea, err := ideaService.Create(ownerID, "owner@example.com", IdeaInput{
		Title:        "  Morning pages  ",
		Category:     &category,
		Description:  "Three pages of longhand writing",
		TimeRequired: 20,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if idea.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, idea.OwnerID)
	}
	// Title is trimmed before storage
	if idea.Title != "Morning pages" {
		t.Errorf("Expected trimmed title, got %q", idea.Title)
	}
	if idea.ID == uuid.Nil {
		t.Error("Expected a generated id")
	}
}

func TestCreateIdea_ProvisionsOwnerProfile(t *testing.T) {
	ideaService, _, profileRepo := newIdeaService()

	ownerID := uuid.New()
	_, err := ideaService.Create(ownerID, "writer@example.com", IdeaInput{
		Title:        "Journal",
		Description:  "Write it down",
		TimeRequired: 10,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	profile, err := profileRepo.GetByID(ownerID)
	if err != nil {
		t.Fatalf("Expected a provisioned profile, got %v", err)
	}
	if profile.Username != "writer" {
		t.Errorf("Expected username 'writer', got %s", profile.Username)
	}
}

func TestCreateIdea_ValidationShortCircuits(t *testing.T) {
	ideaService, ideaRepo, _ := newIdeaService()

	badCategory := "Extreme Ironing"
	cases := []struct {
		name  string
		input IdeaInput
		want  error
	}{
		{"empty title", IdeaInput{Description: "d", TimeRequired: 10}, domain.ErrTitleRequired},
		{"empty description", IdeaInput{Title: "t", TimeRequired: 10}, domain.ErrDescriptionRequired},
		{"zero time", IdeaInput{Title: "t", Description: "d"}, domain.ErrInvalidTimeRequired},
		{"time too large", IdeaInput{Title: "t", Description: "d", TimeRequired: 241}, domain.ErrInvalidTimeRequired},
		{"unknown category", IdeaInput{Title: "t", Description: "d", TimeRequired: 10, Category: &badCategory}, domain.ErrInvalidCategory},
	}
	for _, tc := range cases {
		_, err := ideaService.Create(uuid.New(), "owner@example.com", tc.input)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if ideaRepo.CreateCalls != 0 {
		t.Errorf("Expected no store calls for invalid input, got %d", ideaRepo.CreateCalls)
	}
}

func TestCreateIdea_EmptyOptionalFieldsBecomeNull(t *testing.T) {
	ideaService, _, _ := newIdeaService()

	empty := ""
	blank := "   "
	idea, err := ideaService.Create(uuid.New(), "owner@example.com", IdeaInput{
		Title:        "Tea break",
		Category:     &empty,
		Description:  "Brew a pot of tea",
		Supplies:     &blank,
		TimeRequired: 15,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if idea.Category != nil {
		t.Errorf("Expected nil category, got %q", *idea.Category)
	}
	if idea.Supplies != nil {
		t.Errorf("Expected nil supplies, got %q", *idea.Supplies)
	}
}

func TestListIdeas_FiltersAndOrders(t *testing.T) {
	ideaService, ideaRepo, _ := newIdeaService()

	ownerID := uuid.New()
	ideaRepo.Usernames[ownerID] = "curator"
	crafts := "Creative"
	movement := "Energizing"

	ideaRepo.AddIdea(&domain.Idea{Title: "Collage", Category: &crafts, Description: "cut and paste", TimeRequired: 45, OwnerID: ownerID})
	ideaRepo.AddIdea(&domain.Idea{Title: "Sprint", Category: &movement, Description: "run fast", TimeRequired: 10, OwnerID: ownerID})
	ideaRepo.AddIdea(&domain.Idea{Title: "Marathon prep", Category: &movement, Description: "long run", TimeRequired: 120, OwnerID: ownerID})

	// Category filter
	ideas, err := ideaService.List(domain.IdeaFilter{Category: movement})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("Expected 2 movement ideas, got %d", len(ideas))
	}
	// Newest first
	if ideas[0].Title != "Marathon prep" {
		t.Errorf("Expected newest first, got %s", ideas[0].Title)
	}
	if ideas[0].AuthorUsername != "curator" {
		t.Errorf("Expected author username 'curator', got %s", ideas[0].AuthorUsername)
	}

	// Time band filter
	ideas, err = ideaService.List(domain.IdeaFilter{TimeBand: domain.TimeBandQuick})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ideas) != 1 || ideas[0].Title != "Sprint" {
		t.Fatalf("Expected only the quick idea, got %d ideas", len(ideas))
	}

	// Case-insensitive search over title and description
	ideas, err = ideaService.List(domain.IdeaFilter{Search: "RUN"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ideas) != 2 {
		t.Errorf("Expected 2 search matches, got %d", len(ideas))
	}
}

func TestUpdateIdea_NonOwnerGetsNotFound(t *testing.T) {
	ideaService, ideaRepo, _ := newIdeaService()

	idea := ideaRepo.AddIdea(&domain.Idea{Title: "Theirs", Description: "hands off", TimeRequired: 10, OwnerID: uuid.New()})

	_, err := ideaService.Update(uuid.New(), idea.ID, IdeaInput{
		Title:        "Mine",
		Description:  "taken over",
		TimeRequired: 10,
	})
	if !errors.Is(err, domain.ErrIdeaNotFound) {
		t.Errorf("Expected ErrIdeaNotFound for a non-owner, got %v", err)
	}
}

func TestDeleteIdea_NonOwnerGetsNotFound(t *testing.T) {
	ideaService, ideaRepo, _ := newIdeaService()

	idea := ideaRepo.AddIdea(&domain.Idea{Title: "Theirs", Description: "hands off", TimeRequired: 10, OwnerID: uuid.New()})

	if err := ideaService.Delete(uuid.New(), idea.ID); !errors.Is(err, domain.ErrIdeaNotFound) {
		t.Errorf("Expected ErrIdeaNotFound for a non-owner, got %v", err)
	}
	if _, ok := ideaRepo.Ideas[idea.ID]; !ok {
		t.Error("Expected the idea to survive")
	}
}
