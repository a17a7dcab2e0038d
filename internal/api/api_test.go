package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"issue-tracker/internal/auth"
	"issue-tracker/internal/entity"
	"issue-tracker/internal/events"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/service"
)

func newTestServer(t *testing.T) (*echo.Echo, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	sessions := auth.NewManager("test-secret", auth.NewMemoryTokenStore())
	publisher := events.NewPublisher(nil)

	handler := NewHandler(
		service.NewUserService(store, sessions),
		service.NewIssueService(store.Issues(), store.Comments(), store.Notifications(), publisher),
		service.NewNotificationService(store.Notifications()),
		service.NewAttachmentService(store.Issues(), store.Attachments(), t.TempDir()),
		service.NewAnalyticsService(store.Issues()),
	)

	e := echo.New()
	handler.RegisterRoutes(e)
	return e, store
}

func doJSON(e *echo.Echo, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func registerUser(t *testing.T, e *echo.Echo, username string) entity.User {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"password": "secret",
		"email":    username + "@example.com",
		"fullName": username,
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", username, rec.Code, rec.Body.String())
	}
	user := entity.User{}
	decode(t, rec, &user)
	return user
}

func loginUser(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "secret",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	out := struct {
		Token string `json:"token"`
	}{}
	decode(t, rec, &out)
	return out.Token
}

func createIssue(t *testing.T, e *echo.Echo, body map[string]interface{}) entity.Issue {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/issues", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create issue: %d %s", rec.Code, rec.Body.String())
	}
	issue := entity.Issue{}
	decode(t, rec, &issue)
	return issue
}

func TestRegisterOmitsPasswordAndConflicts(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "johndoe", "password": "secret", "email": "john@example.com", "fullName": "John Doe",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("password leaked in response: %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "johndoe", "password": "other", "email": "j2@example.com", "fullName": "J",
	}, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: %d, want 409", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/register", map[string]string{"username": "nopass"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d, want 400", rec.Code)
	}
}

func TestLoginAndCurrentUser(t *testing.T) {
	e, _ := newTestServer(t)
	registerUser(t, e, "johndoe")

	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{"username": "johndoe", "password": "wrong"}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d, want 401", rec.Code)
	}

	token := loginUser(t, e, "johndoe")

	rec = doJSON(e, http.MethodGet, "/api/auth/user", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("current user: %d %s", rec.Code, rec.Body.String())
	}
	user := entity.User{}
	decode(t, rec, &user)
	if user.Username != "johndoe" || user.Password != "" {
		t.Fatalf("unexpected current user: %+v", user)
	}

	rec = doJSON(e, http.MethodGet, "/api/auth/user", nil, "bogus")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token: %d, want 401", rec.Code)
	}
}

func TestIssueLifecycleOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	reporter := registerUser(t, e, "reporter")
	assignee := registerUser(t, e, "assignee")

	issue := createIssue(t, e, map[string]interface{}{
		"title":       "Unable to login on mobile devices",
		"description": "Login fails on small screens",
		"priority":    "high",
		"category":    "bug",
		"reporterId":  reporter.ID,
	})
	if issue.Status != entity.StatusOpen {
		t.Fatalf("status should default to open: %+v", issue)
	}

	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/api/issues/%d", issue.ID), nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get issue: %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/issues/9999", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing issue: %d, want 404", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/issues", map[string]interface{}{
		"title": "x", "description": "y", "priority": "urgent", "category": "bug", "reporterId": reporter.ID,
	}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid priority: %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/api/issues/%d", issue.ID), map[string]interface{}{
		"status":     "resolved",
		"assigneeId": assignee.ID,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rec.Code, rec.Body.String())
	}
	updated := entity.Issue{}
	decode(t, rec, &updated)
	if updated.Status != entity.StatusResolved || updated.AssigneeID == nil || *updated.AssigneeID != assignee.ID {
		t.Fatalf("patch not applied: %+v", updated)
	}

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/issues/%d", issue.ID), nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/issues/%d", issue.ID), nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d, want 404", rec.Code)
	}
}

func TestNotificationFlow(t *testing.T) {
	e, _ := newTestServer(t)
	reporter := registerUser(t, e, "reporter")
	assignee := registerUser(t, e, "assignee")
	assigneeToken := loginUser(t, e, "assignee")

	issue := createIssue(t, e, map[string]interface{}{
		"title":       "Dashboard slow",
		"description": "Dashboard takes seconds to load",
		"priority":    "medium",
		"category":    "performance",
		"reporterId":  reporter.ID,
		"assigneeId":  assignee.ID,
	})

	rec := doJSON(e, http.MethodGet, "/api/notifications", nil, assigneeToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list notifications: %d %s", rec.Code, rec.Body.String())
	}
	notifications := []entity.Notification{}
	decode(t, rec, &notifications)
	if len(notifications) != 1 || notifications[0].Type != entity.NotificationAssignment || notifications[0].IssueID != issue.ID {
		t.Fatalf("assignment feed: %+v", notifications)
	}

	rec = doJSON(e, http.MethodGet, "/api/notifications", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous notifications: %d, want 401", rec.Code)
	}

	id := notifications[0].ID
	for i := 0; i < 2; i++ {
		rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", id), nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("mark read pass %d: %d", i+1, rec.Code)
		}
		n := entity.Notification{}
		decode(t, rec, &n)
		if !n.Read {
			t.Fatalf("pass %d: read not set", i+1)
		}
	}

	rec = doJSON(e, http.MethodPatch, "/api/notifications/9999/read", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing notification: %d, want 404", rec.Code)
	}
}

func TestCommentsOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	reporter := registerUser(t, e, "reporter")
	commenter := registerUser(t, e, "commenter")
	reporterToken := loginUser(t, e, "reporter")

	issue := createIssue(t, e, map[string]interface{}{
		"title":       "Docs outdated",
		"description": "API docs are stale",
		"priority":    "low",
		"category":    "documentation",
		"reporterId":  reporter.ID,
	})

	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/api/issues/%d/comments", issue.ID), map[string]interface{}{
		"content": "On it",
		"userId":  commenter.ID,
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("add comment: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/issues/%d/comments", issue.ID), nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list comments: %d", rec.Code)
	}
	comments := []entity.Comment{}
	decode(t, rec, &comments)
	if len(comments) != 1 || comments[0].Content != "On it" {
		t.Fatalf("comments: %+v", comments)
	}

	// Commenter is not the reporter, so the reporter hears about it.
	rec = doJSON(e, http.MethodGet, "/api/notifications", nil, reporterToken)
	notifications := []entity.Notification{}
	decode(t, rec, &notifications)
	if len(notifications) != 1 || notifications[0].Type != entity.NotificationComment {
		t.Fatalf("reporter feed: %+v", notifications)
	}

	rec = doJSON(e, http.MethodPost, "/api/issues/9999/comments", map[string]interface{}{"content": "c", "userId": 1}, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("comment on missing issue: %d, want 404", rec.Code)
	}
}

func multipartUpload(t *testing.T, e *echo.Echo, issueID, uploaderID int, filename, mimeType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(content)
	writer.WriteField("uploaderId", fmt.Sprintf("%d", uploaderID))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/issues/%d/attachments", issueID), body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAttachmentsOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	reporter := registerUser(t, e, "reporter")

	issue := createIssue(t, e, map[string]interface{}{
		"title":       "Screenshot needed",
		"description": "Attach a repro screenshot",
		"priority":    "low",
		"category":    "bug",
		"reporterId":  reporter.ID,
	})

	content := []byte("pretend this is a png")
	rec := multipartUpload(t, e, issue.ID, reporter.ID, "repro.png", "image/png", content)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}
	attachment := entity.Attachment{}
	decode(t, rec, &attachment)
	if attachment.Filename != "repro.png" || attachment.IssueID != issue.ID {
		t.Fatalf("attachment: %+v", attachment)
	}

	rec = multipartUpload(t, e, issue.ID, reporter.ID, "evil.sh", "application/x-sh", []byte("#!/bin/sh"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("disallowed mime: %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/issues/%d/attachments", issue.ID), nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list attachments: %d", rec.Code)
	}
	attachments := []entity.Attachment{}
	decode(t, rec, &attachments)
	if len(attachments) != 1 {
		t.Fatalf("attachments: %+v", attachments)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/download/%d", attachment.ID), nil)
	dl := httptest.NewRecorder()
	e.ServeHTTP(dl, req)
	if dl.Code != http.StatusOK {
		t.Fatalf("download: %d %s", dl.Code, dl.Body.String())
	}
	if !bytes.Equal(dl.Body.Bytes(), content) {
		t.Fatalf("downloaded bytes differ")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/download/9999", nil)
	dl = httptest.NewRecorder()
	e.ServeHTTP(dl, req)
	if dl.Code != http.StatusNotFound {
		t.Fatalf("missing file: %d, want 404", dl.Code)
	}
}

func TestAnalyticsSummaryOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	reporter := registerUser(t, e, "reporter")

	for _, p := range []string{"high", "medium", "low"} {
		createIssue(t, e, map[string]interface{}{
			"title":       "issue " + p,
			"description": "d",
			"priority":    p,
			"category":    "bug",
			"reporterId":  reporter.ID,
		})
	}

	rec := doJSON(e, http.MethodGet, "/api/analytics/summary", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: %d %s", rec.Code, rec.Body.String())
	}
	summary := service.Summary{}
	decode(t, rec, &summary)
	if summary.TotalIssues != 3 || summary.OpenIssues != 3 {
		t.Fatalf("summary: %+v", summary)
	}
	if summary.ByPriority[entity.PriorityHigh] != 1 {
		t.Fatalf("byPriority: %+v", summary.ByPriority)
	}

	rec = doJSON(e, http.MethodGet, "/api/analytics/summary?priority=high", nil, "")
	decode(t, rec, &summary)
	if summary.TotalIssues != 1 {
		t.Fatalf("filtered summary: %+v", summary)
	}

	rec = doJSON(e, http.MethodGet, "/api/analytics/summary?from=junk", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad from date: %d, want 400", rec.Code)
	}
}
