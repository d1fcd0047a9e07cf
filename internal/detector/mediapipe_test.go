package detector

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"
)

func TestMediaPipeDetector_RestartsAfterServiceExit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	// The service records each launch and exits without answering.
	script := filepath.Join(t.TempDir(), "crash_service.py")
	body := "import sys\nwith open(sys.argv[0] + '.runs', 'a') as f:\n    f.write('run\\n')\n"
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	d := &MediaPipeDetector{config: DefaultConfig(), scriptPath: script}
	defer d.Close()

	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()

	for i := 0; i < 2; i++ {
		if _, err := d.Detect(&frame); err == nil {
			t.Fatalf("Detect() call %d succeeded against an exited service", i)
		}
		if d.started {
			t.Fatalf("service still marked started after call %d failed", i)
		}
	}

	runs, err := os.ReadFile(script + ".runs")
	if err != nil {
		t.Fatalf("read launch log: %v", err)
	}
	if n := strings.Count(string(runs), "run"); n != 2 {
		t.Errorf("service launched %d times, want 2", n)
	}
}
