package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	notifyout "focuspro/internal/modules/notify/adapter/out"
	"focuspro/internal/modules/notify/domain"
)

func TestGRPCHostIntegrationBeepPlugin(t *testing.T) {
	binPath, checksum := buildBeepPlugin(t)
	manifest := domain.Manifest{
		Name:    "beep",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
		Events:  []string{"session_completed", "daily_goal", "timer_finished"},
	}

	host := notifyout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "beep" {
		t.Fatalf("unexpected metadata name: %s", metadata.Name)
	}
	if len(metadata.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(metadata.Events))
	}

	err = host.Deliver(ctx, manifest, domain.Notification{
		Event: domain.EventSessionCompleted,
		Title: "Session complete",
		Body:  "You focused for 25 minutes.",
	})
	if err != nil {
		t.Fatalf("deliver notification: %v", err)
	}
}

func buildBeepPlugin(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "beep-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/beep")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build beep plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
