package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"focuspro/internal/modules/notify/domain"
	notifyout "focuspro/internal/modules/notify/port/out"
	apperrors "focuspro/internal/platform/errors"
)

// Service manages the installed notifier plugins and fans timer events out
// to them.
type Service struct {
	store notifyout.ManifestStore
	host  notifyout.Host
}

func NewService(store notifyout.ManifestStore, host notifyout.Host) *Service {
	return &Service{store: store, host: host}
}

func (s *Service) List(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperrors.Persistence("load plugin manifests", err)
	}
	return manifests, nil
}

// Doctor launches each plugin through the full lifecycle and reports what it
// finds; it never aborts on the first broken plugin.
func (s *Service) Doctor(ctx context.Context) ([]domain.DoctorReport, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperrors.Persistence("load plugin manifests", err)
	}
	reports := make([]domain.DoctorReport, 0, len(manifests))
	for _, manifest := range manifests {
		reports = append(reports, s.check(ctx, manifest))
	}
	return reports, nil
}

func (s *Service) check(ctx context.Context, manifest domain.Manifest) domain.DoctorReport {
	report := domain.DoctorReport{Name: manifest.Name}
	if err := manifest.Validate(); err != nil {
		report.Detail = err.Error()
		return report
	}
	if err := verifyChecksum(manifest); err != nil {
		report.Detail = err.Error()
		return report
	}
	if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
		report.Detail = err.Error()
		return report
	}
	meta, err := s.host.GetMetadata(ctx, manifest)
	if err != nil {
		report.Detail = err.Error()
		return report
	}
	report.OK = true
	report.Detail = fmt.Sprintf("%s %s, events: %s", meta.Name, meta.Version, strings.Join(meta.Events, ","))
	return report
}

// Test delivers a synthetic notification to one plugin by name, enabled or
// not, and surfaces the delivery error directly.
func (s *Service) Test(ctx context.Context, name string) error {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return apperrors.Persistence("load plugin manifests", err)
	}
	for _, manifest := range manifests {
		if manifest.Name != name {
			continue
		}
		if err := manifest.Validate(); err != nil {
			return err
		}
		if err := verifyChecksum(manifest); err != nil {
			return err
		}
		return s.host.Deliver(ctx, manifest, domain.Notification{
			Event: domain.EventSessionCompleted,
			Title: "Test notification",
			Body:  "If you can read this, the plugin works.",
		})
	}
	return fmt.Errorf("plugin %q: %w", name, apperrors.ErrNotFound)
}

// Dispatch fans the notification out to every enabled, subscribed plugin.
// Failures are logged and swallowed so a broken notifier can never reach
// back into a running timer.
func (s *Service) Dispatch(ctx context.Context, notification domain.Notification) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		slog.Warn("load plugin manifests failed", "error", err)
		return
	}
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.SubscribedTo(notification.Event) {
			continue
		}
		if err := manifest.Validate(); err != nil {
			slog.Warn("skipping invalid plugin manifest", "plugin", manifest.Name, "error", err)
			continue
		}
		if err := verifyChecksum(manifest); err != nil {
			slog.Warn("skipping plugin with bad checksum", "plugin", manifest.Name, "error", err)
			continue
		}
		if err := s.host.Deliver(ctx, manifest, notification); err != nil {
			slog.Warn("notification delivery failed", "plugin", manifest.Name, "event", notification.Event, "error", err)
		}
	}
}

func verifyChecksum(manifest domain.Manifest) error {
	if manifest.SHA256 == "" {
		return nil
	}
	b, err := os.ReadFile(manifest.Binary)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	sum := sha256.Sum256(b)
	if !strings.EqualFold(hex.EncodeToString(sum[:]), manifest.SHA256) {
		return fmt.Errorf("plugin %q: binary checksum mismatch", manifest.Name)
	}
	return nil
}
