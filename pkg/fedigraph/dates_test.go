package fedigraph

import (
	"context"
	"errors"
	"testing"
)

func TestListAvailableDatesSortsAscending(t *testing.T) {
	// Record sets deliberately out of order, with unrelated software,
	// graph types, malformed identifiers and instances files mixed in.
	ds := newFakeDataset([]string{
		"mastodon/federation/20250301/interactions.csv",
		"mastodon/federation/20240115/interactions.csv",
		"mastodon/active_users/20250401/interactions.csv",
		"mastodon/federation/20250203/instances.csv",
		"pleroma/federation/20250101/interactions.csv",
		"not-a-partition",
		"too/many/segments/in/this/one.csv",
		"mastodon/federation/20250203/interactions.csv",
	}, nil)

	loader := &GraphLoader{dataset: ds}
	dates, err := loader.ListAvailableDates(context.Background(), "mastodon", "federation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"20240115", "20250203", "20250301"}
	if len(dates) != len(want) {
		t.Fatalf("unexpected dates: got %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("unexpected dates: got %v, want %v", dates, want)
		}
	}
}

func TestListAvailableDatesEmptyIsNotAnError(t *testing.T) {
	ds := newFakeDataset([]string{"pleroma/federation/20250101/interactions.csv"}, nil)

	loader := &GraphLoader{dataset: ds}
	dates, err := loader.ListAvailableDates(context.Background(), "mastodon", "federation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("unexpected dates: got %v, want none", dates)
	}
}

func TestListAvailableDatesValidatesInput(t *testing.T) {
	loader := &GraphLoader{dataset: newFakeDataset(nil, nil)}
	if _, err := loader.ListAvailableDates(context.Background(), "mastodon", "cross_instance"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestResolveDate(t *testing.T) {
	ds := newFakeDataset([]string{
		"mastodon/federation/20240115/interactions.csv",
		"mastodon/federation/20250203/interactions.csv",
		"mastodon/federation/20250301/interactions.csv",
	}, nil)

	tests := []struct {
		name    string
		sel     dateSelector
		want    string
		wantErr error
	}{
		{name: "latest", sel: dateSelector{kind: selectLatest}, want: "20250301"},
		{name: "explicit date passes through", sel: dateSelector{kind: selectDate, date: "20230101"}, want: "20230101"},
		{name: "latest sentinel as date", sel: dateSelector{kind: selectDate, date: DateLatest}, want: "20250301"},
		{name: "index zero is earliest", sel: dateSelector{kind: selectIndex, index: 0}, want: "20240115"},
		{name: "negative index counts from the end", sel: dateSelector{kind: selectIndex, index: -1}, want: "20250301"},
		{name: "index out of range", sel: dateSelector{kind: selectIndex, index: 3}, wantErr: ErrInvalidArgument},
		{name: "negative index out of range", sel: dateSelector{kind: selectIndex, index: -4}, wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDate(context.Background(), ds, "mastodon", "federation", tt.sel)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("unexpected error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected date: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDateNoPartitions(t *testing.T) {
	ds := newFakeDataset(nil, nil)

	for _, sel := range []dateSelector{
		{kind: selectLatest},
		{kind: selectIndex, index: 0},
	} {
		if _, err := resolveDate(context.Background(), ds, "mastodon", "federation", sel); !errors.Is(err, ErrNoGraphAvailable) {
			t.Fatalf("selector %+v: expected ErrNoGraphAvailable, got %v", sel, err)
		}
	}
}
