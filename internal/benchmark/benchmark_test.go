package benchmark

import (
	"errors"
	"os"
	"testing"
)

func TestRunReturnsWrappedFunctionError(t *testing.T) {
	wanted := errors.New("boom")
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	defer devnull.Close()

	got := Run(devnull, "test label", func() error { return wanted })
	if !errors.Is(got, wanted) {
		t.Errorf("Run() error = %v, want %v", got, wanted)
	}
}

func TestRunPropagatesSuccess(t *testing.T) {
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	defer devnull.Close()

	called := false
	err = Run(devnull, "ok", func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if !called {
		t.Error("wrapped function was never called")
	}
}
