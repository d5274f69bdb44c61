package decomposer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

const (
	fallbackConflict     = "I had trouble decomposing that. Could you list them one by one?"
	defaultEncouragement = "You got this!"
	defaultPreferences   = "No specific preferences."
)

// Decomposer turns a brain dump into a TaskPlan through a structured LLM
// call. Every failure path degrades to a single-task plan carrying the raw
// input, so callers never see an error.
type Decomposer struct {
	runner compose.Runnable[map[string]any, decomposeLLMOutput]
}

type decomposeLLMOutput struct {
	Reasoning     string    `json:"reasoning,omitempty"`
	Tasks         []llmTask `json:"tasks"`
	Conflicts     []string  `json:"conflicts,omitempty"`
	Encouragement string    `json:"encouragement,omitempty"`
}

type llmTask struct {
	Description string  `json:"description"`
	Due         *string `json:"due,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Decomposer, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: decomposer system prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileDecomposerGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile decomposer graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Decomposer{runner: runner}, nil
}

var _ contractx.Planner = (*Decomposer)(nil)

// Decompose never fails. The encouragement override from the turn context
// always wins, on both the model path and the fallback path.
func (d *Decomposer) Decompose(ctx context.Context, userText string, turnCtx contractx.TurnContext) contractx.TaskPlan {
	plan, err := d.generate(ctx, userText, turnCtx)
	if err != nil {
		log.Warn().Err(err).Msg("decomposition failed, returning degraded plan")
		plan = degradedPlan(userText)
	}

	if override := strings.TrimSpace(turnCtx.EncouragementOverride); override != "" {
		plan.Encouragement = override
	}
	return plan
}

func (d *Decomposer) generate(ctx context.Context, userText string, turnCtx contractx.TurnContext) (contractx.TaskPlan, error) {
	preferences := strings.TrimSpace(turnCtx.UserPreferences)
	if preferences == "" {
		preferences = defaultPreferences
	}

	payload := map[string]any{
		"user_preferences": preferences,
		"brain_dump":       userText,
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.TaskPlan{}, fmt.Errorf("%w: marshal decomposer payload: %v", contractx.ErrValidation, err)
	}

	out, err := d.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return contractx.TaskPlan{}, fmt.Errorf("%w: decomposer invoke: %v", contractx.ErrModelInvoke, err)
	}

	return parseLLMOutput(out)
}

func parseLLMOutput(out decomposeLLMOutput) (contractx.TaskPlan, error) {
	tasks := make([]contractx.TaskItem, 0, len(out.Tasks))
	for i, raw := range out.Tasks {
		description := strings.TrimSpace(raw.Description)
		if description == "" {
			return contractx.TaskPlan{}, fmt.Errorf("%w: task %d has empty description", contractx.ErrSchemaViolation, i)
		}

		task := contractx.NewTaskItem(description)
		task.Due = cleanOptional(raw.Due)
		task.Priority = cleanOptional(raw.Priority)
		tasks = append(tasks, task)
	}

	encouragement := strings.TrimSpace(out.Encouragement)
	if encouragement == "" {
		encouragement = defaultEncouragement
	}

	return contractx.TaskPlan{
		Tasks:         tasks,
		Encouragement: encouragement,
		Conflicts:     out.Conflicts,
	}, nil
}

func degradedPlan(userText string) contractx.TaskPlan {
	return contractx.TaskPlan{
		Tasks:     []contractx.TaskItem{contractx.NewTaskItem(userText)},
		Conflicts: []string{fallbackConflict},
	}
}

// cleanOptional folds JSON null and the literal string "null" (which some
// models emit for optional fields) into the empty string.
func cleanOptional(v *string) string {
	if v == nil {
		return ""
	}
	s := strings.TrimSpace(*v)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}
