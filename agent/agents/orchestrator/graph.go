package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Slate-ADHD-Assistant/agent/nodes/orchestrator"
)

// compileHandleMessageGraph builds the per-turn state machine:
// validate -> fetch_context -> decompose -> propose -> gate.
// The gate branches on auto-confirm: execute_and_reply runs the pending
// actions exactly once, reply_pending leaves them for confirmation.
func (o *Orchestrator) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, contractx.AgentTurn], error) {
	graph := compose.NewGraph[nodex.GraphInput, contractx.AgentTurn]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("fetch_context",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchContext(ctx, in, o.tools, o.encouragementOverride)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fetch_context: %w", err)
	}

	if err := graph.AddLambdaNode("decompose_plan",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.DecomposePlan(ctx, in, o.planner)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node decompose_plan: %w", err)
	}

	if err := graph.AddLambdaNode("propose_actions",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ProposeActions(in, o.proposer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node propose_actions: %w", err)
	}

	if err := graph.AddLambdaNode("execute_and_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.AgentTurn, error) {
			in, err := nodex.ExecuteActions(ctx, in, o.tools)
			if err != nil {
				return contractx.AgentTurn{}, err
			}
			return nodex.AssembleReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node execute_and_reply: %w", err)
	}

	if err := graph.AddLambdaNode("reply_pending",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.AgentTurn, error) {
			return nodex.AssembleReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node reply_pending: %w", err)
	}

	gate := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if in.AutoConfirm {
				return "execute_and_reply", nil
			}
			return "reply_pending", nil
		},
		map[string]bool{
			"execute_and_reply": true,
			"reply_pending":     true,
		},
	)

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "fetch_context"},
		{"fetch_context", "decompose_plan"},
		{"decompose_plan", "propose_actions"},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	if err := graph.AddBranch("propose_actions", gate); err != nil {
		return nil, fmt.Errorf("add confirmation gate: %w", err)
	}
	if err := graph.AddEdge("execute_and_reply", compose.END); err != nil {
		return nil, fmt.Errorf("add edge execute_and_reply->end: %w", err)
	}
	if err := graph.AddEdge("reply_pending", compose.END); err != nil {
		return nil, fmt.Errorf("add edge reply_pending->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
