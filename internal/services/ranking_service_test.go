package services

import (
	"context"
	"testing"
	"time"

	"contestbot/internal/models"
)

func seedRankedUsers(t *testing.T, users *fakeUserStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.User{
		{Id: 1, Balance: 10, RegisteredAt: base, IsActive: true},
		{Id: 2, Balance: 10, RegisteredAt: base.Add(time.Hour), IsActive: true},
		{Id: 3, Balance: 25, RegisteredAt: base.Add(2 * time.Hour), IsActive: true},
		{Id: 4, Balance: 0, RegisteredAt: base, IsActive: true},
		{Id: 5, Balance: 50, RegisteredAt: base, IsActive: false},
	}
	for i := range seed {
		if err := users.Upsert(ctx, &seed[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTopOrdersByBalanceThenRegistration(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	seedRankedUsers(t, users)
	service := NewRankingService(users)

	top, err := service.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{3, 1, 2}
	if len(top) != len(want) {
		t.Fatalf("Top length = %d, want %d", len(top), len(want))
	}
	for i, id := range want {
		if top[i].Id != id {
			t.Errorf("Top[%d] = %d, want %d", i, top[i].Id, id)
		}
	}
}

func TestTopBreaksTiesById(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service := NewRankingService(users)

	registered := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []int64{7, 3, 5} {
		user := &models.User{Id: id, Balance: 10, RegisteredAt: registered, IsActive: true}
		if err := users.Upsert(ctx, user); err != nil {
			t.Fatal(err)
		}
	}

	top, err := service.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{3, 5, 7}
	for i, id := range want {
		if top[i].Id != id {
			t.Errorf("Top[%d] = %d, want %d", i, top[i].Id, id)
		}
	}
}

func TestTopRespectsLimit(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service := NewRankingService(users)

	for i := int64(1); i <= 25; i++ {
		user := &models.User{Id: i, Balance: i, RegisteredAt: time.Now(), IsActive: true}
		if err := users.Upsert(ctx, user); err != nil {
			t.Fatal(err)
		}
	}

	top, err := service.Top(ctx, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 20 {
		t.Fatalf("Top length = %d, want 20", len(top))
	}
	if top[0].Id != 25 {
		t.Errorf("Top[0] = %d, want 25", top[0].Id)
	}
}

func TestRankExcludesOutsiders(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	seedRankedUsers(t, users)
	service := NewRankingService(users)

	cases := []struct {
		name   string
		userId int64
		want   int
	}{
		{"leader", 3, 1},
		{"zero balance", 4, Unranked},
		{"deactivated", 5, Unranked},
		{"unknown user", 404, Unranked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rank, err := service.Rank(ctx, tc.userId)
			if err != nil {
				t.Fatal(err)
			}
			if rank != tc.want {
				t.Errorf("Rank(%d) = %d, want %d", tc.userId, rank, tc.want)
			}
		})
	}
}
