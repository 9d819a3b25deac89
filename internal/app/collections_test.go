package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	apperrors "github.com/lugondev/goatswap-cli/internal/errors"
	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

func TestListCollections(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  string
	}{
		{"all", 0, bitmon.String() + " 3\n" + wrapped.String() + " 1\n"},
		{"limited", 1, bitmon.String() + " 3\n"},
		{"limit above count", 10, bitmon.String() + " 3\n" + wrapped.String() + " 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a := New(&out, WithReadonlyProgram(loadFixture(t, goatswap.ClusterMainnet, unknownKey)))

			if err := a.ListCollections(context.Background(), CollectionsOptions{Limit: tt.limit}); err != nil {
				t.Fatalf("ListCollections failed: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestListCollectionsJSON(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, WithFormat(FormatJSON), WithReadonlyProgram(loadFixture(t, goatswap.ClusterMainnet, unknownKey)))

	if err := a.ListCollections(context.Background(), CollectionsOptions{}); err != nil {
		t.Fatalf("ListCollections failed: %v", err)
	}

	var views []CollectionView
	if err := json.Unmarshal(out.Bytes(), &views); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if len(views) != 2 || views[0].Collection != bitmon.String() || views[0].Pairs != 3 {
		t.Errorf("views = %+v", views)
	}
}

func TestListCollectionsErrors(t *testing.T) {
	program := loadFixture(t, goatswap.ClusterMainnet, unknownKey)

	err := New(&bytes.Buffer{}, WithReadonlyProgram(program)).ListCollections(context.Background(), CollectionsOptions{Limit: -1})
	assertCode(t, err, apperrors.ErrInvalidArgument)

	err = New(&bytes.Buffer{}, WithReadonlyProgram(program)).ListCollections(context.Background(), CollectionsOptions{Save: true})
	assertCode(t, err, apperrors.ErrStorageDisabled)
}

func TestListCollectionsSave(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	a := New(&bytes.Buffer{}, WithReadonlyProgram(loadFixture(t, goatswap.ClusterMainnet, unknownKey)), WithRepository(repo))

	if err := a.ListCollections(ctx, CollectionsOptions{Save: true}); err != nil {
		t.Fatalf("ListCollections failed: %v", err)
	}

	recent, err := repo.Snapshots().FindRecent(ctx, 10)
	if err != nil {
		t.Fatalf("FindRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(recent))
	}
	for _, s := range recent {
		if s.Source != "collection" || s.Cluster != "mainnet" {
			t.Errorf("snapshot = %+v", s)
		}
	}
}
