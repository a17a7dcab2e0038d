package service

import (
	"context"
	"testing"
	"time"

	"issue-tracker/internal/entity"
	"issue-tracker/internal/filter"
	"issue-tracker/internal/repository"
)

func TestSummarizeEmptySet(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAnalyticsService(store.Issues())

	summary, err := svc.Summarize(context.Background(), filter.Criteria{}, 0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if summary.TotalIssues != 0 || summary.OpenIssues != 0 || summary.ResolvedIssues != 0 {
		t.Fatalf("empty set counts: %+v", summary)
	}
	if summary.AvgResolutionTime != 0 {
		t.Fatalf("avgResolutionTime should be 0, got %v", summary.AvgResolutionTime)
	}
	// Every enum value must be present even with no data.
	for _, s := range entity.StatusValues {
		if v, ok := summary.ByStatus[s]; !ok || v != 0 {
			t.Fatalf("byStatus missing zero for %s", s)
		}
	}
	for _, p := range entity.PriorityValues {
		if v, ok := summary.ByPriority[p]; !ok || v != 0 {
			t.Fatalf("byPriority missing zero for %s", p)
		}
	}
	for _, c := range entity.CategoryValues {
		if v, ok := summary.ByCategory[c]; !ok || v != 0 {
			t.Fatalf("byCategory missing zero for %s", c)
		}
	}
	if len(summary.RecentIssues) != 0 {
		t.Fatalf("recentIssues should be empty")
	}
}

func TestSummarizeCountsAndTotals(t *testing.T) {
	store := repository.NewMemoryStore()
	issues := store.Issues()
	svc := NewAnalyticsService(issues)
	ctx := context.Background()

	issues.Create(ctx, &entity.Issue{Title: "a", Description: "d", Status: entity.StatusOpen, Priority: entity.PriorityHigh, Category: entity.CategoryBug, ReporterID: 1})
	issues.Create(ctx, &entity.Issue{Title: "b", Description: "d", Status: entity.StatusInProgress, Priority: entity.PriorityMedium, Category: entity.CategoryFeature, ReporterID: 1})
	issues.Create(ctx, &entity.Issue{Title: "c", Description: "d", Status: entity.StatusResolved, Priority: entity.PriorityHigh, Category: entity.CategoryBug, ReporterID: 2})
	issues.Create(ctx, &entity.Issue{Title: "e", Description: "d", Status: entity.StatusClosed, Priority: entity.PriorityLow, Category: entity.CategorySecurity, ReporterID: 2})

	summary, err := svc.Summarize(ctx, filter.Criteria{}, 0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	sum := 0
	for _, v := range summary.ByStatus {
		sum += v
	}
	if summary.TotalIssues != sum || summary.TotalIssues != 4 {
		t.Fatalf("totalIssues %d must equal sum of byStatus %d", summary.TotalIssues, sum)
	}
	if summary.OpenIssues != 2 || summary.ResolvedIssues != 2 {
		t.Fatalf("open=%d resolved=%d, want 2/2", summary.OpenIssues, summary.ResolvedIssues)
	}
	if summary.ByPriority[entity.PriorityHigh] != 2 || summary.ByCategory[entity.CategoryBug] != 2 {
		t.Fatalf("facet counts wrong: %+v %+v", summary.ByPriority, summary.ByCategory)
	}
}

func TestSummarizeIncrementsOnCreate(t *testing.T) {
	store := repository.NewMemoryStore()
	issues := store.Issues()
	svc := NewAnalyticsService(issues)
	ctx := context.Background()

	before, _ := svc.Summarize(ctx, filter.Criteria{}, 0)

	issues.Create(ctx, &entity.Issue{Title: "new bug", Description: "d", Status: entity.StatusOpen, Priority: entity.PriorityHigh, Category: entity.CategoryBug, ReporterID: 1})

	after, _ := svc.Summarize(ctx, filter.Criteria{}, 0)
	if after.ByStatus[entity.StatusOpen] != before.ByStatus[entity.StatusOpen]+1 {
		t.Fatalf("byStatus.open did not increase")
	}
	if after.ByPriority[entity.PriorityHigh] != before.ByPriority[entity.PriorityHigh]+1 {
		t.Fatalf("byPriority.high did not increase")
	}
}

func TestSummarizeAvgResolutionTime(t *testing.T) {
	store := repository.NewMemoryStore()
	issues := store.Issues()
	svc := NewAnalyticsService(issues)
	ctx := context.Background()

	// Three issues created a day apart, each resolved two days after
	// creation.
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	status := entity.StatusResolved
	for i := 0; i < 3; i++ {
		createdAt := now.AddDate(0, 0, i)
		store.SetNow(func() time.Time { return createdAt })
		issue, err := issues.Create(ctx, &entity.Issue{Title: "t", Description: "d", Status: entity.StatusOpen, Priority: entity.PriorityLow, Category: entity.CategoryBug, ReporterID: 1})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		resolvedAt := createdAt.AddDate(0, 0, 2)
		store.SetNow(func() time.Time { return resolvedAt })
		if _, err := issues.Update(ctx, issue.ID, &entity.IssueUpdate{Status: &status}); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	summary, err := svc.Summarize(ctx, filter.Criteria{}, 0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.AvgResolutionTime != 2.0 {
		t.Fatalf("avgResolutionTime = %v, want 2.0", summary.AvgResolutionTime)
	}
}

func TestSummarizeRespectsFilter(t *testing.T) {
	store := repository.NewMemoryStore()
	issues := store.Issues()
	svc := NewAnalyticsService(issues)
	ctx := context.Background()

	issues.Create(ctx, &entity.Issue{Title: "a", Description: "d", Status: entity.StatusOpen, Priority: entity.PriorityHigh, Category: entity.CategoryBug, ReporterID: 1})
	issues.Create(ctx, &entity.Issue{Title: "b", Description: "d", Status: entity.StatusOpen, Priority: entity.PriorityLow, Category: entity.CategoryFeature, ReporterID: 1})

	criteria := filter.Criteria{Priority: []entity.Priority{entity.PriorityHigh}}
	summary, err := svc.Summarize(ctx, criteria, 0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.TotalIssues != 1 {
		t.Fatalf("filtered totalIssues = %d, want 1", summary.TotalIssues)
	}
	sum := 0
	for _, v := range summary.ByStatus {
		sum += v
	}
	if sum != summary.TotalIssues {
		t.Fatalf("totalIssues must track the active filter")
	}
}

func TestSummarizeRecentIssuesLimit(t *testing.T) {
	store := repository.NewMemoryStore()
	issues := store.Issues()
	svc := NewAnalyticsService(issues)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		createdAt := now.AddDate(0, 0, i)
		store.SetNow(func() time.Time { return createdAt })
		issues.Create(ctx, &entity.Issue{Title: "t", Description: "d", Status: entity.StatusOpen, Priority: entity.PriorityLow, Category: entity.CategoryBug, ReporterID: 1})
	}

	summary, _ := svc.Summarize(ctx, filter.Criteria{}, 0)
	if len(summary.RecentIssues) != 5 {
		t.Fatalf("recentIssues length = %d, want 5", len(summary.RecentIssues))
	}
	for i := 1; i < len(summary.RecentIssues); i++ {
		if summary.RecentIssues[i].CreatedAt.After(summary.RecentIssues[i-1].CreatedAt) {
			t.Fatalf("recentIssues not newest-first")
		}
	}
}
