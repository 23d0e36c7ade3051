package util

import "testing"

func TestBuildReferralLink(t *testing.T) {
	got := BuildReferralLink("konkurs_bot", 123456)
	want := "https://t.me/konkurs_bot?start=ref_123456"
	if got != want {
		t.Errorf("BuildReferralLink = %q, want %q", got, want)
	}
}

func TestParseReferralPayload(t *testing.T) {
	cases := []struct {
		payload string
		want    int64
		ok      bool
	}{
		{"ref_123456", 123456, true},
		{"ref_1", 1, true},
		{"ref_0", 0, false},
		{"ref_-5", 0, false},
		{"ref_abc", 0, false},
		{"123456", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseReferralPayload(tc.payload)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseReferralPayload(%q) = %d, %v; want %d, %v", tc.payload, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseRoundTripsBuild(t *testing.T) {
	link := BuildReferralLink("konkurs_bot", 42)
	payload := link[len("https://t.me/konkurs_bot?start="):]
	id, ok := ParseReferralPayload(payload)
	if !ok || id != 42 {
		t.Errorf("Round trip = %d, %v; want 42, true", id, ok)
	}
}
