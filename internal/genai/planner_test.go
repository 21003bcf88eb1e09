package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/model"
)

// January 2024: Mon 1st ... Sat 6th, Sun 7th, Mon 8th.
func date(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

const samplePlan = `{
	"name": "Website relaunch",
	"description": "Rebuild the marketing site",
	"tasks": [
		{"ref": "t1", "parent_ref": "", "title": "Design", "duration": 1},
		{"ref": "t2", "parent_ref": "t1", "title": "Mockups", "duration": 2},
		{"ref": "t3", "parent_ref": "t1", "title": "Review", "duration": 3},
		{"ref": "t4", "parent_ref": "", "title": "Build", "duration": 4}
	]
}`

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func findByTitle(t *testing.T, tasks []*model.Task, title string) *model.Task {
	t.Helper()
	for _, task := range tasks {
		if task.Title == title {
			return task
		}
	}
	t.Fatalf("no task titled %q", title)
	return nil
}

func TestGeneratePlanNotConfigured(t *testing.T) {
	planner := NewPlanner(Config{})

	_, err := planner.GeneratePlan(context.Background(), "anything", date(1))
	assert.ErrorIs(t, err, errors.ErrAINotConfigured)
}

func TestGeneratePlanSchedulesWorkingDays(t *testing.T) {
	srv := chatServer(t, samplePlan)
	defer srv.Close()

	planner := NewPlanner(Config{BaseURL: srv.URL, APIKey: "secret", Model: "gpt-4o-mini"})
	project, err := planner.GeneratePlan(context.Background(), "relaunch the website", date(1))
	require.NoError(t, err)

	assert.Equal(t, "Website relaunch", project.Name)
	require.Len(t, project.Tasks, 4)

	// Leaves run back to back in working days from the anchor.
	mockups := findByTitle(t, project.Tasks, "Mockups")
	assert.Equal(t, date(1), mockups.StartDate) // Mon, Tue
	assert.Equal(t, date(2), mockups.EndDate)

	review := findByTitle(t, project.Tasks, "Review")
	assert.Equal(t, date(3), review.StartDate) // Wed, Thu, Fri
	assert.Equal(t, date(5), review.EndDate)

	build := findByTitle(t, project.Tasks, "Build")
	assert.Equal(t, date(6), build.StartDate) // Sat, Mon, Tue, Wed
	assert.Equal(t, date(10), build.EndDate)

	// The parent spans its subtree.
	design := findByTitle(t, project.Tasks, "Design")
	assert.Equal(t, date(1), design.StartDate)
	assert.Equal(t, date(5), design.EndDate)
	assert.Equal(t, 5, design.Duration)
	assert.Equal(t, 0, design.Level)
	assert.Equal(t, design.ID, mockups.ParentTaskID)
	assert.Equal(t, 1, mockups.Level)

	assert.Equal(t, date(10), project.EndDate)
}

func TestGeneratePlanTolerantOfMarkdownFences(t *testing.T) {
	srv := chatServer(t, "```json\n"+samplePlan+"\n```")
	defer srv.Close()

	planner := NewPlanner(Config{BaseURL: srv.URL, APIKey: "secret", Model: "gpt-4o-mini"})
	project, err := planner.GeneratePlan(context.Background(), "relaunch", date(1))
	require.NoError(t, err)
	assert.Len(t, project.Tasks, 4)
}

func TestGeneratePlanSnapsAnchorToWorkingDay(t *testing.T) {
	srv := chatServer(t, samplePlan)
	defer srv.Close()

	planner := NewPlanner(Config{BaseURL: srv.URL, APIKey: "secret", Model: "gpt-4o-mini"})
	project, err := planner.GeneratePlan(context.Background(), "relaunch", date(7)) // Sunday
	require.NoError(t, err)

	assert.Equal(t, date(8), project.StartDate)
	mockups := findByTitle(t, project.Tasks, "Mockups")
	assert.Equal(t, date(8), mockups.StartDate)
}

func TestParsePlanErrors(t *testing.T) {
	_, err := parsePlan("this is not json")
	assert.Error(t, err)

	_, err = parsePlan(`{"name": "empty", "tasks": []}`)
	assert.Error(t, err)
}

func TestParsePlanForwardParentReference(t *testing.T) {
	plan := `{"name": "bad", "tasks": [
		{"ref": "t1", "parent_ref": "t2", "title": "Child", "duration": 1},
		{"ref": "t2", "parent_ref": "", "title": "Parent", "duration": 1}
	]}`

	doc, err := parsePlan(plan)
	require.NoError(t, err)

	_, err = buildProject(doc, date(1))
	assert.ErrorIs(t, err, errors.ErrParentNotFound)
}

func TestPostJSONFailsFastOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewHTTPClient()
	_, err := client.PostJSON(context.Background(), srv.URL, "", []byte(`{}`))

	require.Error(t, err)
	assert.Equal(t, 1, calls, "client errors are not retried")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("WORKPLAN_AI_URL", "http://localhost:9999")
	t.Setenv("WORKPLAN_AI_KEY", "k")
	t.Setenv("WORKPLAN_AI_MODEL", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model, "model falls back to the default")
}
