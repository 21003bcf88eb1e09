package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/hierarchy"
	"github.com/manav03panchal/workplan/internal/model"
	"github.com/manav03panchal/workplan/internal/schedule"
)

// Config holds the AI endpoint configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// ConfigFromEnv reads the AI endpoint configuration from the
// environment (WORKPLAN_AI_URL, WORKPLAN_AI_KEY, WORKPLAN_AI_MODEL).
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL: os.Getenv("WORKPLAN_AI_URL"),
		APIKey:  os.Getenv("WORKPLAN_AI_KEY"),
		Model:   os.Getenv("WORKPLAN_AI_MODEL"),
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return cfg
}

// Planner turns prompts into scheduled project plans.
type Planner struct {
	cfg  Config
	http *HTTPClient
}

// NewPlanner creates a planner with the given configuration.
func NewPlanner(cfg Config) *Planner {
	return &Planner{
		cfg:  cfg,
		http: NewHTTPClient(),
	}
}

const systemPrompt = `You are a project planning assistant. Given a project
description, respond with ONLY a JSON object of the form:
{"name": "...", "description": "...", "tasks": [
  {"ref": "t1", "parent_ref": "", "title": "...", "duration": 3},
  {"ref": "t2", "parent_ref": "t1", "title": "...", "duration": 2}
]}
Durations are working days (Monday-Saturday). Use parent_ref to nest
subtasks under their parent's ref. No prose, no markdown fences.`

// chat completion request/response shapes (OpenAI-compatible).
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// planDoc is the JSON plan the model returns.
type planDoc struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tasks       []planTask `json:"tasks"`
}

type planTask struct {
	Ref         string `json:"ref"`
	ParentRef   string `json:"parent_ref"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// GeneratePlan asks the model for a plan and schedules it from the
// given anchor date.
func (p *Planner) GeneratePlan(ctx context.Context, prompt string, start time.Time) (*model.Project, error) {
	if p.cfg.BaseURL == "" {
		return nil, errors.ErrAINotConfigured
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(p.cfg.BaseURL, "/") + "/chat/completions"
	respBody, err := p.http.PostJSON(ctx, url, p.cfg.APIKey, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "plan generation")
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(err, "malformed AI response")
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("AI response contained no choices")
	}

	doc, err := parsePlan(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return buildProject(doc, start)
}

// parsePlan decodes the plan JSON, tolerating markdown fences the
// model sometimes wraps around it despite instructions.
func parsePlan(content string) (*planDoc, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var doc planDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.Wrap(err, "AI returned an unparseable plan")
	}
	if len(doc.Tasks) == 0 {
		return nil, fmt.Errorf("AI plan contained no tasks")
	}
	return &doc, nil
}

// buildProject converts a plan into a Project: leaf tasks are laid out
// sequentially in working days from the anchor, parent tasks span
// their subtrees, and the hierarchy builder assigns levels.
func buildProject(doc *planDoc, start time.Time) (*model.Project, error) {
	if working, err := schedule.IsWorkingDay(start); err != nil {
		return nil, errors.Wrap(err, "anchor date")
	} else if !working {
		// Plans always start on a working day.
		start, _ = schedule.AddWorkingDays(start, 1)
	}

	project := model.NewProject(doc.Name, doc.Description, start)

	byRef := make(map[string]*model.Task, len(doc.Tasks))
	hasChildren := make(map[string]bool)
	for _, pt := range doc.Tasks {
		if pt.ParentRef != "" {
			hasChildren[pt.ParentRef] = true
		}
	}

	// Create tasks; leaves are scheduled sequentially.
	cursor := start
	for i, pt := range doc.Tasks {
		duration := pt.Duration
		if duration < 1 {
			duration = 1
		}
		task := model.NewTask(project.ID, pt.Title, cursor, duration)
		task.Description = pt.Description
		if parent, ok := byRef[pt.ParentRef]; ok {
			task.ParentTaskID = parent.ID
		} else if pt.ParentRef != "" {
			return nil, errors.Wrapf(errors.ErrParentNotFound,
				"plan task %d references %q before it is defined", i, pt.ParentRef)
		}
		byRef[pt.Ref] = task
		project.Tasks = append(project.Tasks, task)

		if !hasChildren[pt.Ref] {
			next, err := schedule.AddWorkingDays(task.EndDate, 1)
			if err != nil {
				return nil, err
			}
			cursor = next
		}
	}

	tasks, err := hierarchy.Normalize(project.Tasks)
	if err != nil {
		return nil, err
	}
	project.Tasks = tasks

	// Parents span their subtrees.
	rollUpParents(project.Tasks)
	project.RecalculateEndDate()
	return project, nil
}

// rollUpParents widens every parent task to cover its children. Tasks
// are in pre-order, so walking backwards folds each child into its
// parent before the parent itself is folded upward.
func rollUpParents(tasks []*model.Task) {
	byID := make(map[string]*model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	for i := len(tasks) - 1; i >= 0; i-- {
		t := tasks[i]
		parent, ok := byID[t.ParentTaskID]
		if !ok {
			continue
		}
		if t.StartDate.Before(parent.StartDate) {
			parent.SetStartDate(t.StartDate)
		}
		if t.EndDate.After(parent.EndDate) {
			parent.SetEndDate(t.EndDate)
		}
	}
}
