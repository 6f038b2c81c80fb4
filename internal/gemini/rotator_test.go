package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func rateLimited() error {
	return &APIError{StatusCode: http.StatusTooManyRequests, Body: "quota exceeded"}
}

func TestRotatorNoCredentials(t *testing.T) {
	r := NewRotator(nil)

	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		t.Fatal("operation must not run without credentials")
		return nil
	})
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Do() error = %v, want ErrNoCredentials", err)
	}
}

func TestRotatorDropsBlankCredentials(t *testing.T) {
	r := NewRotator([]string{"", "key1", "", "key2"})
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRotatorSuccessFirstCredential(t *testing.T) {
	r := NewRotator([]string{"key1", "key2"})

	var used []string
	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		used = append(used, cred)
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(used) != 1 || used[0] != "key1" {
		t.Errorf("credentials used = %v, want [key1]", used)
	}
	if r.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0 after success", r.Cursor())
	}
}

func TestRotatorScenarioTwoFailuresThenSuccess(t *testing.T) {
	// Three credentials; 429 on the first two, success on the third.
	r := NewRotator([]string{"key1", "key2", "key3"})

	var used []string
	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		used = append(used, cred)
		if cred == "key3" {
			return nil
		}
		return rateLimited()
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	want := []string{"key1", "key2", "key3"}
	for i, cred := range want {
		if used[i] != cred {
			t.Errorf("attempt %d used %q, want %q", i, used[i], cred)
		}
	}
	if r.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2 (the working credential)", r.Cursor())
	}
}

func TestRotatorExhaustionResetsCursor(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		creds := make([]string, n)
		for i := range creds {
			creds[i] = "key"
		}
		r := NewRotator(creds)

		attempts := 0
		err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
			attempts++
			return rateLimited()
		})

		var exhausted *ExhaustedError
		if !errors.As(err, &exhausted) {
			t.Fatalf("n=%d: Do() error = %v, want ExhaustedError", n, err)
		}
		if attempts != n {
			t.Errorf("n=%d: attempts = %d, want %d", n, attempts, n)
		}
		if r.Cursor() != 0 {
			t.Errorf("n=%d: Cursor() = %d, want 0 after exhaustion", n, r.Cursor())
		}

		var apiErr *APIError
		if !errors.As(exhausted.Last, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("n=%d: ExhaustedError.Last = %v, want the last rotatable failure", n, exhausted.Last)
		}
	}
}

func TestRotatorTerminalErrorNoRotation(t *testing.T) {
	r := NewRotator([]string{"key1", "key2"})
	terminal := &APIError{StatusCode: http.StatusInternalServerError, Body: "boom"}

	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		attempts++
		return terminal
	})

	if !errors.Is(err, terminal) {
		t.Errorf("Do() error = %v, want the terminal error unchanged", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no rotation on terminal failure)", attempts)
	}
	if r.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0 (unchanged)", r.Cursor())
	}
}

func TestRotatorNonAPIErrorIsTerminal(t *testing.T) {
	r := NewRotator([]string{"key1", "key2"})
	netErr := errors.New("connection refused")

	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		return netErr
	})
	if !errors.Is(err, netErr) {
		t.Errorf("Do() error = %v, want the network error unchanged", err)
	}
}

func TestRotatorCursorPersistsAcrossCalls(t *testing.T) {
	r := NewRotator([]string{"key1", "key2", "key3"})

	// First call: key1 rate limited, key2 works. Cursor lands on key2.
	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		if cred == "key1" {
			return rateLimited()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("first Do() error = %v", err)
	}

	// Second call starts from key2 directly.
	var first string
	err = r.Do(context.Background(), func(ctx context.Context, cred string) error {
		if first == "" {
			first = cred
		}
		return nil
	})
	if err != nil {
		t.Fatalf("second Do() error = %v", err)
	}
	if first != "key2" {
		t.Errorf("second call started with %q, want key2", first)
	}
}

func TestRotatorRecoversAfterExhaustion(t *testing.T) {
	r := NewRotator([]string{"key1", "key2"})

	_ = r.Do(context.Background(), func(ctx context.Context, cred string) error {
		return rateLimited()
	})

	// Next call starts over from the first credential.
	var used []string
	err := r.Do(context.Background(), func(ctx context.Context, cred string) error {
		used = append(used, cred)
		return nil
	})
	if err != nil {
		t.Fatalf("Do() after exhaustion error = %v", err)
	}
	if len(used) != 1 || used[0] != "key1" {
		t.Errorf("credentials used = %v, want [key1]", used)
	}
}
