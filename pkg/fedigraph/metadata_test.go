package fedigraph

import (
	"context"
	"errors"
	"testing"

	"github.com/fediscience/fedigraph/pkg/croissant"
)

func TestGetGraphMetadataColumnRenaming(t *testing.T) {
	interactions := "bookwyrm/federation/20250203/interactions.csv"
	instances := "bookwyrm/federation/20250203/instances.csv"
	ds := newFakeDataset(
		[]string{interactions, instances},
		map[string][]croissant.Record{
			instances: {
				{
					instances + "/Instance":  []byte("a.example"),
					instances + "/UserCount": []byte("1200"),
				},
				{
					instances + "/Instance":  []byte("b.example"),
					instances + "/UserCount": []byte("87"),
				},
			},
		},
	)

	loader := &GraphLoader{dataset: ds}
	df, err := loader.GetGraphMetadata(context.Background(), "bookwyrm", "federation", "latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := df.Nrow(); got != 2 {
		t.Fatalf("unexpected row count: got %d, want 2", got)
	}
	names := df.Names()
	for _, want := range []string{"Instance", "UserCount"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
			if name != columnName(name) {
				t.Fatalf("column %q still carries a path prefix", name)
			}
		}
		if !found {
			t.Fatalf("column %q missing, have %v", want, names)
		}
	}
}

func TestGetGraphMetadataResolvesLatest(t *testing.T) {
	oldInteractions := "mastodon/federation/20240115/interactions.csv"
	newInteractions := "mastodon/federation/20250203/interactions.csv"
	oldInstances := "mastodon/federation/20240115/instances.csv"
	newInstances := "mastodon/federation/20250203/instances.csv"
	ds := newFakeDataset(
		[]string{oldInteractions, newInteractions, oldInstances, newInstances},
		map[string][]croissant.Record{
			oldInstances: {{oldInstances + "/Instance": []byte("stale.example")}},
			newInstances: {
				{newInstances + "/Instance": []byte("fresh.example")},
				{newInstances + "/Instance": []byte("fresher.example")},
			},
		},
	)

	loader := &GraphLoader{dataset: ds}
	for _, date := range []string{"", "latest"} {
		df, err := loader.GetGraphMetadata(context.Background(), "mastodon", "federation", date)
		if err != nil {
			t.Fatalf("date %q: unexpected error: %v", date, err)
		}
		if got := df.Nrow(); got != 2 {
			t.Fatalf("date %q: unexpected row count: got %d, want 2", date, got)
		}
	}
}

func TestGetGraphMetadataValidatesInput(t *testing.T) {
	loader := &GraphLoader{dataset: newFakeDataset(nil, nil)}
	if _, err := loader.GetGraphMetadata(context.Background(), "peertube", "active_users", "latest"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestGetGraphMetadataNoPartitions(t *testing.T) {
	loader := &GraphLoader{dataset: newFakeDataset(nil, nil)}
	if _, err := loader.GetGraphMetadata(context.Background(), "mastodon", "federation", ""); !errors.Is(err, ErrNoGraphAvailable) {
		t.Fatalf("expected ErrNoGraphAvailable, got %v", err)
	}
}

func TestGetGraphMetadataEmptyPartition(t *testing.T) {
	instances := "mastodon/federation/20250203/instances.csv"
	interactions := "mastodon/federation/20250203/interactions.csv"
	ds := newFakeDataset(
		[]string{interactions, instances},
		map[string][]croissant.Record{instances: {}},
	)

	loader := &GraphLoader{dataset: ds}
	df, err := loader.GetGraphMetadata(context.Background(), "mastodon", "federation", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := df.Nrow(); got != 0 {
		t.Fatalf("unexpected row count: got %d, want 0", got)
	}
}
