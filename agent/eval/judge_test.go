package eval

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

type fakeChatModel struct {
	responses []*schema.Message
	err       error
	idx       int
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func TestEvaluateReturnsVerdict(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		responses: []*schema.Message{
			{Content: `{"score":9,"reasoning":"clean split, dates captured","pass":true}`},
		},
	}
	j, err := NewJudge(context.Background(), fake, "judge prompt")
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	tasks := []contractx.TaskItem{
		{Description: "Apply for visa", Due: "Friday"},
		{Description: "Buy groceries", Due: "tonight"},
		{Description: "Email boss"},
	}
	verdict, err := j.Evaluate(context.Background(), DecompositionStressTest, tasks)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if verdict.Score != 9 || !verdict.Pass {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
}

func TestEvaluateRejectsOutOfRangeScore(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		responses: []*schema.Message{
			{Content: `{"score":42,"reasoning":"","pass":true}`},
		},
	}
	j, err := NewJudge(context.Background(), fake, "judge prompt")
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	_, err = j.Evaluate(context.Background(), DecompositionStressTest, nil)
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestEvaluatePropagatesModelFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{err: errors.New("judge offline")}
	j, err := NewJudge(context.Background(), fake, "judge prompt")
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	_, err = j.Evaluate(context.Background(), DecompositionStressTest, nil)
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke, got %v", err)
	}
}

func TestNewJudgeRequiresPrompt(t *testing.T) {
	t.Parallel()

	_, err := NewJudge(context.Background(), &fakeChatModel{}, " ")
	if !errors.Is(err, contractx.ErrPromptMissing) {
		t.Fatalf("expected ErrPromptMissing, got %v", err)
	}
}
