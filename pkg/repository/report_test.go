package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/interfaces"
	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/atelier-vert/rapport/pkg/repository/firestore"
	"github.com/atelier-vert/rapport/pkg/repository/memory"
	"github.com/google/uuid"
)

func newTestReport(client types.ClientName, createdAt time.Time) *model.Report {
	return &model.Report{
		ID:          types.ReportID(uuid.NewString()),
		Client:      client,
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		InterventionIDs: []types.InterventionID{
			types.InterventionID(uuid.NewString()),
		},
		Team: []model.TeamMember{
			{Key: "U001", Name: "Alice Martin", UserID: types.UserID("U001")},
			{Key: "mention_paul_leclerc", Name: "Paul Leclerc", Mentioned: true},
		},
		PageURL:   "https://notion.so/page-001",
		CreatedAt: createdAt,
	}
}

func runReportRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		client := types.ClientName(fmt.Sprintf("client-%s", uuid.NewString()))
		report := newTestReport(client, time.Now().UTC().Truncate(time.Second))

		if err := repo.Report().Put(ctx, report); err != nil {
			t.Fatalf("failed to put report: %v", err)
		}

		got, err := repo.Report().Get(ctx, report.ID)
		if err != nil {
			t.Fatalf("failed to get report: %v", err)
		}

		if got.ID != report.ID {
			t.Errorf("expected ID=%s, got %s", report.ID, got.ID)
		}
		if got.Client != client {
			t.Errorf("expected Client=%s, got %s", client, got.Client)
		}
		if got.PageURL != report.PageURL {
			t.Errorf("expected PageURL=%s, got %s", report.PageURL, got.PageURL)
		}
		if len(got.InterventionIDs) != 1 {
			t.Errorf("expected 1 intervention ID, got %d", len(got.InterventionIDs))
		}
		if len(got.Team) != 2 {
			t.Fatalf("expected 2 team members, got %d", len(got.Team))
		}
		if !got.Team[1].Mentioned {
			t.Error("expected second member to be mentioned")
		}
	})

	t.Run("Put without ID fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport(types.ClientName("client"), time.Now().UTC())
		report.ID = ""

		if err := repo.Report().Put(ctx, report); err == nil {
			t.Error("expected error for empty ID")
		}
	})

	t.Run("Get missing returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Report().Get(ctx, types.ReportID(uuid.NewString()))
		if err == nil {
			t.Fatal("expected error for missing report")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("List returns client reports newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		client := types.ClientName(fmt.Sprintf("client-%s", uuid.NewString()))
		other := types.ClientName(fmt.Sprintf("client-%s", uuid.NewString()))

		now := time.Now().UTC().Truncate(time.Second)
		older := newTestReport(client, now.Add(-48*time.Hour))
		newer := newTestReport(client, now)
		foreign := newTestReport(other, now)

		for _, r := range []*model.Report{older, newer, foreign} {
			if err := repo.Report().Put(ctx, r); err != nil {
				t.Fatalf("failed to put report: %v", err)
			}
		}

		got, err := repo.Report().List(ctx, client)
		if err != nil {
			t.Fatalf("failed to list reports: %v", err)
		}

		if len(got) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(got))
		}
		if got[0].ID != newer.ID || got[1].ID != older.ID {
			t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
		}
	})
}

func TestMemoryReportRepository(t *testing.T) {
	runReportRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreReportRepository(t *testing.T) {
	runReportRepositoryTest(t, newFirestoreRepository)
}
