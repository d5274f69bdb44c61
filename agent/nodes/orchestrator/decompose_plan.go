package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

func DecomposePlan(
	ctx context.Context,
	in *GraphState,
	planner contractx.Planner,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Plan = planner.Decompose(ctx, in.Text, in.Context)
	return in, nil
}
