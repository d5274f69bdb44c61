package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Slate-ADHD-Assistant/agent/nodes/orchestrator"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

type Config struct {
	// EncouragementOverride, when non-empty, replaces the plan's
	// encouragement on every turn regardless of what the model produced.
	EncouragementOverride string
}

// Orchestrator sequences one full turn: context fetch, decomposition,
// action proposal, the confirmation gate, and message assembly. Each call
// is self-contained; no session state is carried between turns.
type Orchestrator struct {
	planner  contractx.Planner
	proposer contractx.Proposer
	tools    contractx.ToolGateway

	graphRunner compose.Runnable[nodex.GraphInput, contractx.AgentTurn]

	encouragementOverride string
}

func New(
	planner contractx.Planner,
	proposer contractx.Proposer,
	tools contractx.ToolGateway,
	cfg Config,
) (*Orchestrator, error) {
	if planner == nil {
		return nil, errors.New("planner is required")
	}
	if proposer == nil {
		return nil, errors.New("proposer is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}

	o := &Orchestrator{
		planner:               planner,
		proposer:              proposer,
		tools:                 tools,
		encouragementOverride: strings.TrimSpace(cfg.EncouragementOverride),
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage runs one turn. With autoConfirm set, proposed actions are
// executed before the turn returns and RequiresConfirmation is false;
// otherwise the actions come back pending for the caller to confirm.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID string, text string, autoConfirm bool) (contractx.AgentTurn, error) {
	return o.graphRunner.Invoke(ctx, nodex.GraphInput{
		UserID:      userID,
		Text:        text,
		AutoConfirm: autoConfirm,
	})
}

// Confirm executes a previously returned pending action list. This is the
// human-in-the-loop "yes" path; it is a plain gateway call with no
// orchestrator state behind it.
func (o *Orchestrator) Confirm(ctx context.Context, actions []contractx.ToolAction) []contractx.ToolResult {
	return o.tools.Execute(ctx, actions)
}
