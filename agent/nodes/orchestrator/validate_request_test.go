package orchestratornode

import (
	"errors"
	"testing"
)

func TestValidateRequestRejectsEmptyText(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := ValidateRequest(GraphInput{UserID: "u1", Text: text}); !errors.Is(err, ErrInvalidMessage) {
			t.Fatalf("text %q: got err %v, want ErrInvalidMessage", text, err)
		}
	}
}

func TestValidateRequestTrimsAndDefaults(t *testing.T) {
	t.Parallel()

	state, err := ValidateRequest(GraphInput{Text: "  Buy milk  ", AutoConfirm: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Text != "Buy milk" {
		t.Fatalf("got text %q, want trimmed input", state.Text)
	}
	if state.UserID != DefaultUserID {
		t.Fatalf("got user id %q, want %q", state.UserID, DefaultUserID)
	}
	if !state.AutoConfirm {
		t.Fatal("auto confirm flag was not carried into the state")
	}
}

func TestValidateRequestKeepsExplicitUserID(t *testing.T) {
	t.Parallel()

	state, err := ValidateRequest(GraphInput{UserID: " alex ", Text: "plan my week"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.UserID != "alex" {
		t.Fatalf("got user id %q, want %q", state.UserID, "alex")
	}
}
