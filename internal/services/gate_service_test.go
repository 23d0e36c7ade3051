package services

import (
	"context"
	"errors"
	"testing"

	"contestbot/internal/models"
)

func addSubscription(t *testing.T, service *SubscriptionService, handle string) *models.MandatorySubscription {
	t.Helper()
	sub, err := service.AddPublic(context.Background(), handle, "Kanal")
	if err != nil {
		t.Fatal(err)
	}
	return sub
}

func TestEvaluatePassesWhenAllSatisfied(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	checker := newFakeChecker()
	gate := NewGateService(subs, checker, &fakeNotifier{})

	addSubscription(t, subService, "alpha")
	addSubscription(t, subService, "beta")
	checker.statuses["@alpha"] = models.MembershipMember
	checker.statuses["@beta"] = models.MembershipAdministrator

	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Errorf("Passed = false, want true; missing: %v", result.Missing)
	}
}

func TestEvaluateReportsMissingChannels(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	checker := newFakeChecker()
	gate := NewGateService(subs, checker, &fakeNotifier{})

	addSubscription(t, subService, "alpha")
	addSubscription(t, subService, "beta")
	checker.statuses["@alpha"] = models.MembershipMember
	checker.statuses["@beta"] = models.MembershipLeft

	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Fatal("Passed = true, want false")
	}
	if len(result.Missing) != 1 || result.Missing[0].ChannelId != "@beta" {
		t.Errorf("Missing = %v, want only @beta", result.Missing)
	}
}

func TestEvaluateFailsClosedOnCheckerError(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	checker := newFakeChecker()
	gate := NewGateService(subs, checker, &fakeNotifier{})

	addSubscription(t, subService, "alpha")
	checker.errs["@alpha"] = errors.New("telegram unavailable")

	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Fatal("Passed = true on checker error, want false")
	}
}

func TestEvaluateTreatsRestrictedAsMissing(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	checker := newFakeChecker()
	gate := NewGateService(subs, checker, &fakeNotifier{})

	addSubscription(t, subService, "alpha")
	checker.statuses["@alpha"] = models.MembershipRestricted

	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Fatal("Passed = true for restricted member, want false")
	}
}

func TestEvaluateSkipsPrivateChannels(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	checker := newFakeChecker()
	gate := NewGateService(subs, checker, &fakeNotifier{})

	if _, err := subService.AddPrivate(ctx, "https://t.me/+abc123", "Yopiq kanal"); err != nil {
		t.Fatal(err)
	}

	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Errorf("Passed = false, want true; private channels are confirmed asynchronously")
	}
	if checker.calls != 0 {
		t.Errorf("Checker calls = %d, want 0", checker.calls)
	}
}

func TestEvaluateNeverCaches(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	checker := newFakeChecker()
	gate := NewGateService(subs, checker, &fakeNotifier{})

	addSubscription(t, subService, "alpha")
	checker.statuses["@alpha"] = models.MembershipMember

	for i := 0; i < 3; i++ {
		if _, err := gate.Evaluate(ctx, 10); err != nil {
			t.Fatal(err)
		}
	}
	if checker.calls != 3 {
		t.Errorf("Checker calls = %d, want 3", checker.calls)
	}

	// A user who leaves between evaluations is caught on the next pass.
	checker.statuses["@alpha"] = models.MembershipLeft
	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Error("Passed = true after the user left, want false")
	}
}

func TestEvaluateWithoutCheckerFailsClosed(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	gate := NewGateService(subs, nil, nil)

	addSubscription(t, subService, "alpha")

	result, err := gate.Evaluate(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Fatal("Passed = true without a checker, want false")
	}
}

func TestHandleMembershipChangeNotifiesOnAcceptedJoin(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubscriptionStore{}
	subService := NewSubscriptionService(subs)
	notifier := &fakeNotifier{}
	gate := NewGateService(subs, newFakeChecker(), notifier)

	sub, err := subService.AddPrivate(ctx, "-100123", "Yopiq kanal")
	if err != nil {
		t.Fatal(err)
	}

	gate.HandleMembershipChange(ctx, sub.ChannelId, 10, models.MembershipMember)
	if len(notifier.notified) != 1 || notifier.notified[0] != 10 {
		t.Errorf("Notified = %v, want [10]", notifier.notified)
	}

	// Leaving a channel and joins in unrelated chats stay silent.
	gate.HandleMembershipChange(ctx, sub.ChannelId, 10, models.MembershipLeft)
	gate.HandleMembershipChange(ctx, "-100999", 10, models.MembershipMember)
	if len(notifier.notified) != 1 {
		t.Errorf("Notified = %v, want exactly one notification", notifier.notified)
	}
}
