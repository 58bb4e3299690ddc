package obslog

import "testing"

func TestDiscard_DoesNotPanic(t *testing.T) {
	l := Discard()
	l.Info("hello")
	l.WithRun("run-1").WithPhase("DISCOVERY").WithWorker(2).Info("worker event")
}

func TestNew_BuildsBothModes(t *testing.T) {
	if l := New(true); l == nil {
		t.Fatal("expected non-nil logger in debug mode")
	}
	if l := New(false); l == nil {
		t.Fatal("expected non-nil logger in production mode")
	}
}
