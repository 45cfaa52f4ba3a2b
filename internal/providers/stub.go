//go:build !windows

package providers

import (
	"context"
	"time"

	"wasp/internal/models"
)

// Non-Windows builds get providers that report everything as absent, so the
// engine and its tests run on any platform. A scan on such a build completes
// with every rule unresolved, never with a crash.

func newPlatformBundle(_ time.Duration) Bundle {
	return Bundle{
		Registry:       absentRegistry{},
		SecurityPolicy: absentSecurityPolicy{},
		AuditPolicy:    absentAuditPolicy{},
		Services:       absentServices{},
	}
}

type absentRegistry struct{}

func (absentRegistry) ReadValue(_ context.Context, path, name string) (string, bool) {
	logDiagnostic("registry read of %s\\%s skipped: not running on Windows", path, name)
	return "", false
}

type absentSecurityPolicy struct{}

func (absentSecurityPolicy) Export(_ context.Context) (*models.SecurityPolicySnapshot, bool) {
	logDiagnostic("security policy export skipped: not running on Windows")
	return nil, false
}

type absentAuditPolicy struct{}

func (absentAuditPolicy) Export(_ context.Context) (*models.AuditPolicySnapshot, bool) {
	logDiagnostic("audit policy export skipped: not running on Windows")
	return nil, false
}

type absentServices struct{}

func (absentServices) ReadStatus(_ context.Context, serviceName string) (models.ServiceState, bool) {
	logDiagnostic("service query for %s skipped: not running on Windows", serviceName)
	return models.ServiceState{}, false
}
