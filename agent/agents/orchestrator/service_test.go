package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/tool"
)

type fakePlanner struct {
	plan     contractx.TaskPlan
	calls    int
	lastText string
	lastCtx  contractx.TurnContext
}

func (f *fakePlanner) Decompose(ctx context.Context, userText string, turnCtx contractx.TurnContext) contractx.TaskPlan {
	f.calls++
	f.lastText = userText
	f.lastCtx = turnCtx

	plan := f.plan
	if override := strings.TrimSpace(turnCtx.EncouragementOverride); override != "" {
		plan.Encouragement = override
	}
	return plan
}

type gatewayCall struct {
	actions []contractx.ToolAction
}

type fakeGateway struct {
	bundle     *contractx.ContextBundle
	contextErr bool
	calls      []gatewayCall
}

func (f *fakeGateway) Execute(ctx context.Context, actions []contractx.ToolAction) []contractx.ToolResult {
	f.calls = append(f.calls, gatewayCall{
		actions: append([]contractx.ToolAction(nil), actions...),
	})

	results := make([]contractx.ToolResult, 0, len(actions))
	for _, action := range actions {
		if action.Kind == contractx.ActionGetUserContext {
			if f.contextErr {
				results = append(results, contractx.ToolResult{
					Status:  contractx.StatusError,
					Details: "store unreachable",
					Context: &contractx.ContextBundle{Status: contractx.StatusError},
				})
				continue
			}
			results = append(results, contractx.ToolResult{
				Status:  contractx.StatusSuccess,
				Context: f.bundle,
			})
			continue
		}
		results = append(results, contractx.ToolResult{
			Status:  contractx.StatusSuccess,
			Details: "ok",
		})
	}
	return results
}

// executionCalls returns the gateway calls that ran proposed actions, i.e.
// everything except the per-turn context fetch.
func (f *fakeGateway) executionCalls() []gatewayCall {
	var out []gatewayCall
	for _, call := range f.calls {
		if len(call.actions) == 1 && call.actions[0].Kind == contractx.ActionGetUserContext {
			continue
		}
		out = append(out, call)
	}
	return out
}

func newTestOrchestrator(t *testing.T, planner contractx.Planner, tools contractx.ToolGateway, cfg Config) *Orchestrator {
	t.Helper()
	o, err := New(planner, toolx.NewProposer(), tools, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func successBundle(prefs string) *contractx.ContextBundle {
	return &contractx.ContextBundle{
		Status: contractx.StatusSuccess,
		Context: contractx.TurnContext{
			UserPreferences: prefs,
		},
	}
}

func TestHandleMessageEmptyText(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, &fakePlanner{}, &fakeGateway{bundle: successBundle("p")}, Config{})
	_, err := o.HandleMessage(context.Background(), "u1", "   ", false)
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestHandleMessagePendingConfirmation(t *testing.T) {
	t.Parallel()

	withDue := contractx.NewTaskItem("Apply for visa")
	withDue.Due = "Friday"
	planner := &fakePlanner{plan: contractx.TaskPlan{
		Tasks:         []contractx.TaskItem{withDue},
		Encouragement: "Nice brain dump!",
	}}
	tools := &fakeGateway{bundle: successBundle("likes mornings")}

	o := newTestOrchestrator(t, planner, tools, Config{})
	turn, err := o.HandleMessage(context.Background(), "u1", "visa by friday", false)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	if !turn.RequiresConfirmation {
		t.Fatal("expected RequiresConfirmation without auto-confirm")
	}
	if len(turn.PendingActions) != 2 {
		t.Fatalf("expected schedule+reminder pending, got %d", len(turn.PendingActions))
	}
	if got := tools.executionCalls(); len(got) != 0 {
		t.Fatalf("pending actions must not be executed, got %d execution calls", len(got))
	}
	if !strings.Contains(turn.UserFacingMessage, "Sound good?") {
		t.Fatalf("message must end with the confirmation prompt:\n%s", turn.UserFacingMessage)
	}
	if !strings.Contains(turn.UserFacingMessage, "1. Apply for visa (Due: Friday)") {
		t.Fatalf("message must enumerate tasks with due dates:\n%s", turn.UserFacingMessage)
	}
	if planner.lastCtx.UserPreferences != "likes mornings" {
		t.Fatalf("planner must receive the fetched context, got %+v", planner.lastCtx)
	}
}

func TestHandleMessageAutoConfirmExecutesOnce(t *testing.T) {
	t.Parallel()

	withDue := contractx.NewTaskItem("Apply for visa")
	withDue.Due = "Friday"
	planner := &fakePlanner{plan: contractx.TaskPlan{
		Tasks: []contractx.TaskItem{withDue},
	}}
	tools := &fakeGateway{bundle: successBundle("p")}

	o := newTestOrchestrator(t, planner, tools, Config{})
	turn, err := o.HandleMessage(context.Background(), "u1", "visa by friday", true)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	if turn.RequiresConfirmation {
		t.Fatal("auto-confirm must clear RequiresConfirmation")
	}
	execs := tools.executionCalls()
	if len(execs) != 1 {
		t.Fatalf("expected exactly one execution call, got %d", len(execs))
	}
	if len(execs[0].actions) != 2 {
		t.Fatalf("expected both proposed actions executed, got %d", len(execs[0].actions))
	}
	if execs[0].actions[0].Kind != contractx.ActionScheduleEvent || execs[0].actions[1].Kind != contractx.ActionSetReminder {
		t.Fatalf("execution must preserve proposal order: %+v", execs[0].actions)
	}
	if strings.Contains(turn.UserFacingMessage, "Sound good?") {
		t.Fatalf("no confirmation prompt after auto-confirm:\n%s", turn.UserFacingMessage)
	}
}

func TestHandleMessageEncouragementOverrideFirstLine(t *testing.T) {
	t.Parallel()

	planner := &fakePlanner{plan: contractx.TaskPlan{
		Tasks:         []contractx.TaskItem{contractx.NewTaskItem("Buy milk")},
		Encouragement: "model text",
	}}
	tools := &fakeGateway{bundle: successBundle("p")}

	o := newTestOrchestrator(t, planner, tools, Config{EncouragementOverride: "Keep going!"})
	turn, err := o.HandleMessage(context.Background(), "u1", "buy milk", false)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	lines := strings.Split(turn.UserFacingMessage, "\n")
	if lines[0] != "Keep going!" {
		t.Fatalf("first line must be the override, got %q", lines[0])
	}
}

func TestHandleMessageContextFetchFailureProceeds(t *testing.T) {
	t.Parallel()

	planner := &fakePlanner{plan: contractx.TaskPlan{
		Tasks: []contractx.TaskItem{contractx.NewTaskItem("Buy milk")},
	}}
	tools := &fakeGateway{contextErr: true}

	o := newTestOrchestrator(t, planner, tools, Config{})
	turn, err := o.HandleMessage(context.Background(), "ghost-user", "buy milk", false)
	if err != nil {
		t.Fatalf("context failure must not fail the turn: %v", err)
	}
	if planner.calls != 1 {
		t.Fatalf("planner must still run, got %d calls", planner.calls)
	}
	if planner.lastCtx.UserPreferences != "" {
		t.Fatalf("planner must see empty preferences, got %q", planner.lastCtx.UserPreferences)
	}
	if len(turn.Tasks) != 1 {
		t.Fatalf("turn must carry the plan, got %d tasks", len(turn.Tasks))
	}
}

func TestHandleMessageNoTasksAsksToRephrase(t *testing.T) {
	t.Parallel()

	planner := &fakePlanner{plan: contractx.TaskPlan{Encouragement: "Hi!"}}
	tools := &fakeGateway{bundle: successBundle("p")}

	o := newTestOrchestrator(t, planner, tools, Config{})
	turn, err := o.HandleMessage(context.Background(), "u1", "hmmm", false)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if !strings.Contains(turn.UserFacingMessage, "couldn't find any specific tasks") {
		t.Fatalf("expected clarification request:\n%s", turn.UserFacingMessage)
	}
	if len(turn.PendingActions) != 0 {
		t.Fatalf("no tasks means no actions, got %d", len(turn.PendingActions))
	}
}

func TestHandleMessageConflictsListed(t *testing.T) {
	t.Parallel()

	planner := &fakePlanner{plan: contractx.TaskPlan{
		Tasks:     []contractx.TaskItem{contractx.NewTaskItem("Buy milk")},
		Conflicts: []string{"two things due tonight"},
	}}
	tools := &fakeGateway{bundle: successBundle("p")}

	o := newTestOrchestrator(t, planner, tools, Config{})
	turn, err := o.HandleMessage(context.Background(), "u1", "buy milk", false)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if !strings.Contains(turn.UserFacingMessage, "- two things due tonight") {
		t.Fatalf("conflicts must be bulleted:\n%s", turn.UserFacingMessage)
	}
}

func TestHandleMessageDefaultUserID(t *testing.T) {
	t.Parallel()

	planner := &fakePlanner{plan: contractx.TaskPlan{}}
	tools := &fakeGateway{bundle: successBundle("p")}

	o := newTestOrchestrator(t, planner, tools, Config{})
	if _, err := o.HandleMessage(context.Background(), "  ", "do things", false); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	if len(tools.calls) == 0 {
		t.Fatal("expected a context fetch call")
	}
	first := tools.calls[0].actions[0]
	if first.Payload["user_id"] != "default_user" {
		t.Fatalf("blank user id must fall back to default, got %v", first.Payload["user_id"])
	}
}

func TestConfirmExecutesThroughGateway(t *testing.T) {
	t.Parallel()

	tools := &fakeGateway{bundle: successBundle("p")}
	o := newTestOrchestrator(t, &fakePlanner{}, tools, Config{})

	actions := []contractx.ToolAction{
		{Kind: contractx.ActionSetReminder, Payload: map[string]any{"task_description": "x", "remind_at": "noon"}, Description: "r"},
	}
	results := o.Confirm(context.Background(), actions)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(tools.executionCalls()) != 1 {
		t.Fatalf("expected one execution call, got %d", len(tools.executionCalls()))
	}
}
