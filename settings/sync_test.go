package settings

import (
	"context"
	"errors"
	"testing"

	"clipcaption/types"
)

// TestApplyRollback simulates a remote persist failure: the observable value
// must equal the pre-update snapshot afterwards.
func TestApplyRollback(t *testing.T) {
	initial := types.CaptionSettings{FontSize: 24, Position: types.PositionBottom, Color: "#ffffff"}
	s := NewSynchronizer(initial)

	next := initial
	next.FontSize = 30

	persistErr := errors.New("remote rejected")
	err := s.Apply(context.Background(), next, func(ctx context.Context, v types.CaptionSettings) error {
		return persistErr
	})
	if !errors.Is(err, persistErr) {
		t.Fatalf("Apply error = %v, want %v", err, persistErr)
	}
	if got := s.Current(); got != initial {
		t.Fatalf("Current() = %+v, want rollback to %+v", got, initial)
	}
}

// TestApplySuccess verifies the optimistic value becomes authoritative and the
// persist call receives the complete object.
func TestApplySuccess(t *testing.T) {
	initial := types.CaptionSettings{FontSize: 24, Position: types.PositionBottom, Color: "#ffffff"}
	s := NewSynchronizer(initial)

	next := types.CaptionSettings{FontSize: 30, Position: types.PositionTop, Color: "#00ff00"}

	var persisted types.CaptionSettings
	err := s.Apply(context.Background(), next, func(ctx context.Context, v types.CaptionSettings) error {
		persisted = v
		return nil
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if persisted != next {
		t.Fatalf("persisted = %+v, want full object %+v", persisted, next)
	}
	if got := s.Current(); got != next {
		t.Fatalf("Current() = %+v, want %+v", got, next)
	}
}

// TestApplyOptimisticVisibility checks the new value is observable before the
// persist call returns.
func TestApplyOptimisticVisibility(t *testing.T) {
	initial := types.CaptionSettings{FontSize: 24, Position: types.PositionBottom, Color: "#ffffff"}
	s := NewSynchronizer(initial)

	next := initial
	next.FontSize = 40

	err := s.Apply(context.Background(), next, func(ctx context.Context, v types.CaptionSettings) error {
		if got := s.Current(); got != next {
			t.Errorf("Current() during persist = %+v, want optimistic %+v", got, next)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

// TestApplySingleFlight starts a second update while the first persist is
// blocked; the second must fail fast with ErrUpdateInFlight.
func TestApplySingleFlight(t *testing.T) {
	s := NewSynchronizer(types.CaptionSettings{FontSize: 24, Position: types.PositionBottom, Color: "#ffffff"})

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.Apply(context.Background(), types.CaptionSettings{FontSize: 30, Position: types.PositionBottom, Color: "#ffffff"},
			func(ctx context.Context, v types.CaptionSettings) error {
				close(entered)
				<-release
				return nil
			})
	}()

	<-entered
	err := s.Apply(context.Background(), types.CaptionSettings{FontSize: 32, Position: types.PositionBottom, Color: "#ffffff"},
		func(ctx context.Context, v types.CaptionSettings) error { return nil })
	if !errors.Is(err, ErrUpdateInFlight) {
		t.Fatalf("concurrent Apply = %v, want ErrUpdateInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if got := s.Current().FontSize; got != 30 {
		t.Fatalf("FontSize = %d, want 30 from the first update", got)
	}
}

func TestValidate(t *testing.T) {
	valid := types.CaptionSettings{FontSize: 24, Position: types.PositionBottom, Color: "#ffffff"}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name string
		mod  func(*types.CaptionSettings)
	}{
		{"font too small", func(s *types.CaptionSettings) { s.FontSize = 12 }},
		{"font too large", func(s *types.CaptionSettings) { s.FontSize = 64 }},
		{"bad position", func(s *types.CaptionSettings) { s.Position = "center" }},
		{"bad color", func(s *types.CaptionSettings) { s.Color = "white" }},
		{"short hex", func(s *types.CaptionSettings) { s.Color = "#fff" }},
	}
	for _, tc := range tests {
		s := valid
		tc.mod(&s)
		if err := Validate(s); err == nil {
			t.Errorf("%s: Validate = nil, want error", tc.name)
		}
	}
}
