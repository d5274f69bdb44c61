// Command eval runs the decomposition stress test end-to-end and grades
// the produced plan with an LLM judge.
package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	decomposerx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/agents/decomposer"
	orchestratorx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/agents/orchestrator"
	evalx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/eval"
	llmx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/prompt"
	storex "github.com/tanpawarit/Slate-ADHD-Assistant/agent/store"
	toolx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/tool"
	configx "github.com/tanpawarit/Slate-ADHD-Assistant/pkg/config"
	_ "github.com/tanpawarit/Slate-ADHD-Assistant/pkg/logger/autoload"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	storeCfg := configx.MustNew[storex.FileStoreConfig]("STORE")
	st, err := storex.NewFileStore(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create file store")
	}
	gateway, err := toolx.NewGateway(st)
	if err != nil {
		log.Fatal().Err(err).Msg("create tool gateway")
	}

	prompts := promptx.LoadPromptSet()

	decomposerCfg := llmCfg.OpenRouterFor(llmx.RoleDecomposer)
	decomposerModel, err := decomposerCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create decomposer model")
	}
	planner, err := decomposerx.New(ctx, decomposerModel, prompts.Decomposer)
	if err != nil {
		log.Fatal().Err(err).Msg("create decomposer")
	}

	orch, err := orchestratorx.New(planner, toolx.NewProposer(), gateway, orchestratorx.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("create orchestrator")
	}

	judgeCfg := llmCfg.OpenRouterFor(llmx.RoleJudge)
	judgeModel, err := judgeCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create judge model")
	}
	judge, err := evalx.NewJudge(ctx, judgeModel, prompts.Judge)
	if err != nil {
		log.Fatal().Err(err).Msg("create judge")
	}

	testCase := evalx.DecompositionStressTest
	fmt.Printf("running evaluation: %s\n", testCase.Name)

	turn, err := orch.HandleMessage(ctx, "eval_user", testCase.InputText, false)
	if err != nil {
		log.Fatal().Err(err).Msg("turn failed")
	}
	fmt.Printf("agent generated %d tasks\n", len(turn.Tasks))

	verdict, err := judge.Evaluate(ctx, testCase, turn.Tasks)
	if err != nil {
		log.Fatal().Err(err).Msg("judge failed")
	}

	fmt.Printf("score:  %d/10\n", verdict.Score)
	fmt.Printf("passed: %v\n", verdict.Pass)
	fmt.Printf("reason: %s\n", verdict.Reasoning)
}
