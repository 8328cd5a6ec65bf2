package sigtrap

import (
	"sync"
	"testing"

	"golang.org/x/sys/unix"
)

func TestInstall_Idempotent(t *testing.T) {
	// Install from many goroutines at once; the latch must end up set and
	// nothing may race or double-run.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Install()
		}()
	}
	wg.Wait()

	if !Installed() {
		t.Error("Installed() = false after Install")
	}
	Install() // any number of additional calls is fine
	if !Installed() {
		t.Error("latch must stay set")
	}
}

func TestIsFaultSignal(t *testing.T) {
	for _, sig := range FaultSignals() {
		if !IsFaultSignal(sig) {
			t.Errorf("IsFaultSignal(%v) = false", sig)
		}
	}
	for _, sig := range []unix.Signal{unix.SIGUSR1, unix.SIGTERM, unix.SIGINT} {
		if IsFaultSignal(sig) {
			t.Errorf("IsFaultSignal(%v) = true", sig)
		}
	}
}

func TestFaultSignals_Copy(t *testing.T) {
	sigs := FaultSignals()
	if len(sigs) != 5 {
		t.Fatalf("len = %d, want 5", len(sigs))
	}
	sigs[0] = unix.SIGUSR1
	if FaultSignals()[0] == unix.SIGUSR1 {
		t.Error("FaultSignals must return a copy")
	}
}
