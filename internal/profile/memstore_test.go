package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

func testPref() domain.UserPreference {
	return domain.UserPreference{
		AccountID: 42,
		BTag:      "Tester-1234",
		Mode:      domain.ModeCompetitive,
		Region:    domain.RegionUS,
		Platform:  domain.PlatformPC,
	}
}

func TestRegisterTwiceLeavesRowUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	if err := store.Register(ctx, testPref()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := testPref()
	second.BTag = "Other-9999"
	if err := store.Register(ctx, second); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second register err = %v, want ErrAlreadyRegistered", err)
	}

	pref, err := store.Lookup(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if pref.BTag != "Tester-1234" {
		t.Fatalf("btag = %q, original row was modified", pref.BTag)
	}
}

func TestUpdatesRequireRegistration(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	if err := store.SetMode(ctx, 42, domain.ModeQuickplay); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("SetMode err = %v, want ErrNotRegistered", err)
	}
	if err := store.SetTag(ctx, 42, "Tester-1234"); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("SetTag err = %v, want ErrNotRegistered", err)
	}
	if err := store.Remove(ctx, 42); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("Remove err = %v, want ErrNotRegistered", err)
	}

	// No row may appear as a side effect of a failed update.
	pref, err := store.Lookup(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if pref != nil {
		t.Fatalf("lookup after failed updates = %+v, want nil", pref)
	}
}

func TestPointUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.Register(ctx, testPref()); err != nil {
		t.Fatal(err)
	}

	if err := store.SetMode(ctx, 42, domain.ModeQuickplay); err != nil {
		t.Fatal(err)
	}
	if err := store.SetRegion(ctx, 42, domain.RegionKR); err != nil {
		t.Fatal(err)
	}
	if err := store.SetPlatform(ctx, 42, domain.PlatformPSN); err != nil {
		t.Fatal(err)
	}

	pref, err := store.Lookup(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if pref.Mode != domain.ModeQuickplay || pref.Region != domain.RegionKR || pref.Platform != domain.PlatformPSN {
		t.Fatalf("pref = %+v", pref)
	}
	if pref.BTag != "Tester-1234" {
		t.Fatalf("btag changed: %q", pref.BTag)
	}
}

func TestLookupByTag(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.Register(ctx, testPref()); err != nil {
		t.Fatal(err)
	}

	pref, err := store.LookupByTag(ctx, "Tester-1234")
	if err != nil {
		t.Fatal(err)
	}
	if pref == nil || pref.AccountID != 42 {
		t.Fatalf("pref = %+v", pref)
	}

	missing, err := store.LookupByTag(ctx, "Nobody-1")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("missing tag returned %+v", missing)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.Register(ctx, testPref()); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, 42); err != nil {
		t.Fatal(err)
	}
	pref, err := store.Lookup(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if pref != nil {
		t.Fatalf("pref after remove = %+v", pref)
	}
}
