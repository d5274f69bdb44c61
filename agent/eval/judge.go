// Package eval grades the assistant's task decomposition with a second
// model acting as judge. It sits outside the request path.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

// Case is one evaluation scenario.
type Case struct {
	Name             string
	InputText        string
	ExpectedBehavior string
}

// DecompositionStressTest is the golden case: three tasks with different
// due dates buried in one run-on sentence.
var DecompositionStressTest = Case{
	Name: "Decomposition Stress Test",
	InputText: "I need to apply for a visa by Friday, buy groceries for dinner tonight, " +
		"and also email my boss about the project delay.",
	ExpectedBehavior: "The agent should split this into 3 distinct tasks with different due dates/priorities.",
}

// Verdict is the judge's structured grade.
type Verdict struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
	Pass      bool   `json:"pass"`
}

type Judge struct {
	runner compose.Runnable[map[string]any, Verdict]
}

func NewJudge(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Judge, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: judge system prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileJudgeGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile judge graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Judge{runner: runner}, nil
}

// Evaluate asks the judge model to grade the produced task list against the
// case. Unlike the planner, judge failures propagate: a broken harness
// should fail loudly, not degrade.
func (j *Judge) Evaluate(ctx context.Context, c Case, tasks []contractx.TaskItem) (Verdict, error) {
	payload := map[string]any{
		"input_text":        c.InputText,
		"plan":              tasks,
		"expected_behavior": c.ExpectedBehavior,
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: marshal judge payload: %v", contractx.ErrValidation, err)
	}

	verdict, err := j.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: judge invoke: %v", contractx.ErrModelInvoke, err)
	}

	if verdict.Score < 1 || verdict.Score > 10 {
		return Verdict{}, fmt.Errorf("%w: judge score=%d out of range", contractx.ErrSchemaViolation, verdict.Score)
	}
	return verdict, nil
}

func compileJudgeGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, Verdict], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	parser := schema.NewMessageJSONParser[Verdict](&schema.MessageJSONParseConfig{
		ParseFrom: schema.MessageParseFromContent,
	})

	graph := compose.NewGraph[map[string]any, Verdict]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add judge prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add judge model node: %w", err)
	}
	if err := graph.AddLambdaNode("parse_json", compose.MessageParser(parser)); err != nil {
		return nil, fmt.Errorf("add judge parser node: %w", err)
	}

	edges := [][2]string{
		{compose.START, "prompt"},
		{"prompt", "model"},
		{"model", "parse_json"},
		{"parse_json", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add judge edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("eval.judge_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile judge graph: %w", err)
	}
	return runner, nil
}
