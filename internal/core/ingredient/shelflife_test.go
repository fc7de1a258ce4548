package ingredient

import (
	"testing"
	"time"
)

func TestShelfLifeDefault(t *testing.T) {
	if days := ShelfLifeDays("unknown-item-xyz"); days != DefaultShelfLifeDays {
		t.Errorf("ShelfLifeDays(unknown) = %d, want %d", days, DefaultShelfLifeDays)
	}
}

func TestShelfLifeFuzzyLookup(t *testing.T) {
	// "fresh milk carton" is not an exact table key but contains "milk".
	if days := ShelfLifeDays("fresh milk stuff"); days != shelfLifeTable["milk"] {
		t.Errorf("fuzzy lookup = %d, want %d", days, shelfLifeTable["milk"])
	}
}

func TestEstimateExpiry(t *testing.T) {
	added := time.Now()
	est := EstimateExpiry("milk", added)
	if est.ShelfLifeDays != 7 {
		t.Errorf("milk shelf life = %d, want 7", est.ShelfLifeDays)
	}
	wantExpiry := added.AddDate(0, 0, 7)
	if !est.ExpiryDate.Equal(wantExpiry) {
		t.Errorf("expiry = %v, want %v", est.ExpiryDate, wantExpiry)
	}
	if est.DaysLeft != 7 {
		t.Errorf("days left = %d, want 7", est.DaysLeft)
	}
}

func TestDaysLeftFloorsAtZero(t *testing.T) {
	// Item added 20 days ago with a 7 day shelf life expired 13 days ago.
	added := time.Now().AddDate(0, 0, -20)
	est := EstimateExpiry("milk", added)
	if est.DaysLeft != 0 {
		t.Errorf("days left = %d, want 0 (never negative)", est.DaysLeft)
	}
	if u := UrgencyOf(est.DaysLeft); u != UrgencyCritical {
		t.Errorf("urgency = %q, want critical", u)
	}
}

func TestDaysLeftMidnightTruncation(t *testing.T) {
	// Expiry late tomorrow evening still counts as one full day regardless
	// of the current time of day.
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	expiry := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
	if d := DaysLeft(expiry, now); d != 1 {
		t.Errorf("DaysLeft = %d, want 1", d)
	}

	sameDay := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	if d := DaysLeft(sameDay, now); d != 0 {
		t.Errorf("DaysLeft same day = %d, want 0", d)
	}
}

func TestUrgencyTiers(t *testing.T) {
	cases := []struct {
		daysLeft int
		want     Urgency
	}{
		{0, UrgencyCritical},
		{1, UrgencyCritical},
		{2, UrgencyUrgent},
		{3, UrgencyUrgent},
		{4, UrgencyWarning},
		{7, UrgencyWarning},
		{8, UrgencyNormal},
		{30, UrgencyNormal},
	}
	for _, c := range cases {
		if got := UrgencyOf(c.daysLeft); got != c.want {
			t.Errorf("UrgencyOf(%d) = %q, want %q", c.daysLeft, got, c.want)
		}
	}
}

func TestShouldNotify(t *testing.T) {
	if !ShouldNotify(2) {
		t.Error("ShouldNotify(2) = false, want true")
	}
	if ShouldNotify(3) {
		t.Error("ShouldNotify(3) = true, want false")
	}
}
