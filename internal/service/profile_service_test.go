package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/testutil"
)

func TestEnsureProfile_CreatesMissing(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()

	profile, err := profileService.EnsureProfile(accountID, "Jane.Doe@Example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if profile.ID != accountID {
		t.Errorf("Expected profile id %s, got %s", accountID, profile.ID)
	}
	if profile.Username != "janedoe" {
		t.Errorf("Expected username 'janedoe', got %s", profile.Username)
	}
	if profile.FullName != nil {
		t.Errorf("Expected nil full name, got %v", *profile.FullName)
	}
}

func TestEnsureProfile_Idempotent(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()

	first, err := profileService.EnsureProfile(accountID, "repeat@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := profileService.EnsureProfile(accountID, "repeat@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first.ID != second.ID || first.Username != second.Username {
		t.Errorf("Expected the same profile back, got %v and %v", first, second)
	}
	if profileRepo.CreateCalls != 1 {
		t.Errorf("Expected 1 create call, got %d", profileRepo.CreateCalls)
	}
}

func TestEnsureProfile_LostRaceIsSuccess(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()

	// Simulate another request inserting the row between the lookup and the
	// insert: Create reports the primary key violation and the row exists.
	profileRepo.CreateFn = func(profile *domain.Profile) (*domain.Profile, error) {
		profileRepo.AddProfile(&domain.Profile{
			ID:       accountID,
			Username: "racer",
			Email:    "racer@example.com",
		})
		return nil, domain.ErrProfileExists
	}

	profile, err := profileService.EnsureProfile(accountID, "racer@example.com")
	if err != nil {
		t.Fatalf("Expected the lost race to resolve, got %v", err)
	}
	if profile.Username != "racer" {
		t.Errorf("Expected the winner's row, got username %s", profile.Username)
	}
}

func TestEnsureProfile_UsernameTakenRetriesWithSuffix(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	profileRepo.AddProfile(&domain.Profile{
		ID:       uuid.New(),
		Username: "shared",
		Email:    "elsewhere@example.com",
	})

	accountID := uuid.New()

	profile, err := profileService.EnsureProfile(accountID, "shared@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasPrefix(profile.Username, "shared_") {
		t.Errorf("Expected a suffixed username, got %s", profile.Username)
	}
	if len(profile.Username) > domain.MaxUsernameLength {
		t.Errorf("Suffixed username %s exceeds the length limit", profile.Username)
	}
}

func TestEnsureProfile_LookupErrorAborts(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	storeErr := errors.New("connection refused")
	profileRepo.GetByIDErr = storeErr

	_, err := profileService.EnsureProfile(uuid.New(), "down@example.com")
	if !errors.Is(err, storeErr) {
		t.Fatalf("Expected the lookup error back, got %v", err)
	}
	if profileRepo.CreateCalls != 0 {
		t.Errorf("Expected no create attempt after a lookup failure, got %d", profileRepo.CreateCalls)
	}
}

func TestEnsureProfile_FallbackUsername(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()

	// An email whose local part strips to nothing falls back to the account id
	profile, err := profileService.EnsureProfile(accountID, "!!!@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.Username == "" {
		t.Error("Expected a non-empty fallback username")
	}
}

func TestUpdateProfile_NormalizesUsername(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()
	profileRepo.AddProfile(&domain.Profile{
		ID:       accountID,
		Username: "old",
		Email:    "case@example.com",
	})

	profile, err := profileService.UpdateProfile(accountID, "  MiXeD_99  ", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.Username != "mixed_99" {
		t.Errorf("Expected username 'mixed_99', got %s", profile.Username)
	}
}

func TestUpdateProfile_RejectsInvalidUsername(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()
	profileRepo.AddProfile(&domain.Profile{
		ID:       accountID,
		Username: "valid",
		Email:    "valid@example.com",
	})

	cases := []struct {
		username string
		want     error
	}{
		{"", domain.ErrUsernameRequired},
		{"has space", domain.ErrUsernameInvalid},
		{"dash-ed", domain.ErrUsernameInvalid},
		{strings.Repeat("a", domain.MaxUsernameLength+1), domain.ErrUsernameTooLong},
	}
	for _, tc := range cases {
		_, err := profileService.UpdateProfile(accountID, tc.username, nil)
		if !errors.Is(err, tc.want) {
			t.Errorf("Username %q: expected %v, got %v", tc.username, tc.want, err)
		}
	}
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := NewProfileService(profileRepo)

	accountID := uuid.New()
	profileRepo.AddProfile(&domain.Profile{
		ID:       accountID,
		Username: "mover",
		Email:    "mover@example.com",
	})
	profileRepo.AddProfile(&domain.Profile{
		ID:       uuid.New(),
		Username: "occupied",
		Email:    "other@example.com",
	})

	_, err := profileService.UpdateProfile(accountID, "occupied", nil)
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}
