package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

func ProposeActions(in *GraphState, proposer contractx.Proposer) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Pending = proposer.Propose(in.Plan.Tasks)
	return in, nil
}
