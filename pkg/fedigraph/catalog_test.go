package fedigraph

import (
	"errors"
	"strings"
	"testing"
)

func TestListAllSoftware(t *testing.T) {
	want := []string{"bookwyrm", "friendica", "lemmy", "mastodon", "misskey", "peertube", "pleroma"}
	got := ListAllSoftware()
	if len(got) != len(want) {
		t.Fatalf("unexpected software list: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected software list: got %v, want %v", got, want)
		}
	}
}

func TestListGraphTypes(t *testing.T) {
	types, err := ListGraphTypes("lemmy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"federation", "cross_instance", "intra_instance"}
	if len(types) != len(want) {
		t.Fatalf("unexpected graph types: got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("unexpected graph types: got %v, want %v", types, want)
		}
	}
}

func TestListGraphTypesUnknownSoftware(t *testing.T) {
	_, err := ListGraphTypes("diaspora")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	for _, software := range softwareNames {
		if !strings.Contains(err.Error(), software) {
			t.Fatalf("error %q does not name valid software %q", err, software)
		}
	}
}

func TestCheckInput(t *testing.T) {
	tests := []struct {
		name      string
		software  string
		graphType string
		wantErr   bool
		wantIn    []string
	}{
		{
			name:      "valid pair",
			software:  "mastodon",
			graphType: "active_users",
		},
		{
			name:      "unknown software",
			software:  "gnu-social",
			graphType: "federation",
			wantErr:   true,
			wantIn:    softwareNames,
		},
		{
			name:      "graph type not offered by software",
			software:  "bookwyrm",
			graphType: "active_users",
			wantErr:   true,
			wantIn:    []string{"federation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkInput(tt.software, tt.graphType)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			for _, want := range tt.wantIn {
				if !strings.Contains(err.Error(), want) {
					t.Fatalf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}
