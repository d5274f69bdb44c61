package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/decomposer.txt
	decomposerRaw string

	//go:embed template/judge.txt
	judgeRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Decomposer string
	Judge      string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Decomposer: strings.TrimSpace(decomposerRaw),
		Judge:      strings.TrimSpace(judgeRaw),
	}
}
