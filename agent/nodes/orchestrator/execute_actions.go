package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

// ExecuteActions runs every pending action exactly once. The gateway
// guarantees positional results; error results stay in their slots.
func ExecuteActions(
	ctx context.Context,
	in *GraphState,
	tools contractx.ToolGateway,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Results = tools.Execute(ctx, in.Pending)
	return in, nil
}
