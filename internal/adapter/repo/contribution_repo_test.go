package repo

import (
	"context"
	"testing"
	"time"

	"redstring/internal/sqlinline"
)

func TestContributionsReceivedAndGivenUseDistinctQueries(t *testing.T) {
	date := time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC)
	sql := &fakeSQL{
		rows: map[string][][]any{
			sqlinline.QListContributionsReceived: {
				{"c1", int64(25000), date, "Acme PAC", "", "Jane Smith", "1"},
				{"c2", int64(1000), date, "John Doe", "7", "Jane Smith", "1"},
			},
			sqlinline.QListContributionsGiven: {
				{"c3", int64(500), date, "Jane Smith", "1", "Bob Roe", "9"},
			},
		},
	}
	r := NewContributionRepository(sql)

	received, err := r.Received(context.Background(), "1")
	if err != nil {
		t.Fatalf("Received returned error: %v", err)
	}
	if len(received) != 2 || received[0].Amount != 25000 || received[1].ContributorID != "7" {
		t.Fatalf("unexpected received: %#v", received)
	}

	given, err := r.Given(context.Background(), "1")
	if err != nil {
		t.Fatalf("Given returned error: %v", err)
	}
	if len(given) != 1 || given[0].RecipientName != "Bob Roe" {
		t.Fatalf("unexpected given: %#v", given)
	}
}

func TestContributionsEmptyIsNotNil(t *testing.T) {
	got, err := NewContributionRepository(&fakeSQL{}).Given(context.Background(), "1")
	if err != nil {
		t.Fatalf("Given returned error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected empty non-nil slice")
	}
}
