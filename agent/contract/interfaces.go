package contract

import "context"

// Planner decomposes a brain dump into a task plan. It never fails: every
// generation or parsing error degrades to a single-task fallback plan, so
// callers always get something to show the user.
type Planner interface {
	Decompose(ctx context.Context, userText string, turnCtx TurnContext) TaskPlan
}

// Proposer derives deferred actions from a task list.
type Proposer interface {
	Propose(tasks []TaskItem) []ToolAction
}

// ToolGateway executes actions in order. The result slice always has the
// same length and order as the input; a failing action is reported as an
// error result and never aborts the rest of the batch.
type ToolGateway interface {
	Execute(ctx context.Context, actions []ToolAction) []ToolResult
}
