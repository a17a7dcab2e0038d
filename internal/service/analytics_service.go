package service

import (
	"context"
	"math"

	"issue-tracker/internal/entity"
	"issue-tracker/internal/filter"
	"issue-tracker/internal/repository"
)

const recentIssueLimit = 5

// Summary is the aggregate view over the (filtered) issue set.
type Summary struct {
	TotalIssues       int                     `json:"totalIssues"`
	OpenIssues        int                     `json:"openIssues"`
	ResolvedIssues    int                     `json:"resolvedIssues"`
	AvgResolutionTime float64                 `json:"avgResolutionTime"`
	ByStatus          map[entity.Status]int   `json:"byStatus"`
	ByPriority        map[entity.Priority]int `json:"byPriority"`
	ByCategory        map[entity.Category]int `json:"byCategory"`
	RecentIssues      []entity.Issue          `json:"recentIssues"`
}

// AnalyticsService recomputes the summary from scratch on every call.
// There is no incremental maintenance; the issue set is small enough
// that a full pass per request is fine.
type AnalyticsService struct {
	issues repository.IssueRepository
}

func NewAnalyticsService(issues repository.IssueRepository) *AnalyticsService {
	return &AnalyticsService{issues: issues}
}

// Summarize lists all issues, narrows them by the criteria and computes
// the counting maps, zero-initialized over the closed enums so absent
// values report 0 rather than a missing key.
func (s *AnalyticsService) Summarize(ctx context.Context, criteria filter.Criteria, currentUserID int) (*Summary, error) {
	all, err := s.issues.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing issues for analytics")
		return nil, err
	}

	issues := filter.Apply(all, criteria, currentUserID)

	summary := &Summary{
		ByStatus:   map[entity.Status]int{},
		ByPriority: map[entity.Priority]int{},
		ByCategory: map[entity.Category]int{},
	}
	for _, v := range entity.StatusValues {
		summary.ByStatus[v] = 0
	}
	for _, v := range entity.PriorityValues {
		summary.ByPriority[v] = 0
	}
	for _, v := range entity.CategoryValues {
		summary.ByCategory[v] = 0
	}

	var resolvedCount int
	var resolvedTotalDays float64
	for _, issue := range issues {
		summary.ByStatus[issue.Status]++
		summary.ByPriority[issue.Priority]++
		summary.ByCategory[issue.Category]++

		if issue.Status == entity.StatusResolved || issue.Status == entity.StatusClosed {
			resolvedCount++
			resolvedTotalDays += issue.UpdatedAt.Sub(issue.CreatedAt).Hours() / 24
		}
	}

	summary.TotalIssues = len(issues)
	summary.OpenIssues = summary.ByStatus[entity.StatusOpen] + summary.ByStatus[entity.StatusInProgress]
	summary.ResolvedIssues = summary.ByStatus[entity.StatusResolved] + summary.ByStatus[entity.StatusClosed]

	if resolvedCount > 0 {
		// Elapsed time between creation and last update while resolved,
		// in days, rounded to one decimal.
		summary.AvgResolutionTime = math.Round(resolvedTotalDays/float64(resolvedCount)*10) / 10
	}

	// List is createdAt-descending already.
	if len(issues) > recentIssueLimit {
		summary.RecentIssues = issues[:recentIssueLimit]
	} else {
		summary.RecentIssues = issues
	}

	return summary, nil
}
