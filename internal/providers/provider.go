package providers

import (
	"context"
	"fmt"
	"os"
	"time"

	"wasp/internal/models"
)

var (
	EnableDiagnostics = false
)

func logDiagnostic(format string, args ...interface{}) {
	if EnableDiagnostics {
		fmt.Fprintf(os.Stderr, "[DIAG-PROVIDERS] "+format+"\n", args...)
	}
}

// The engine talks to the OS only through these four capability interfaces.
// Every call is fallible and reports absence instead of an error: a missing
// key, a missing service and an access-denied read are indistinguishable to
// the caller. Implementations must respect context cancellation and treat a
// timeout as absent.

// RegistryReader reads a single registry value.
type RegistryReader interface {
	ReadValue(ctx context.Context, path, name string) (string, bool)
}

// SecurityPolicyExporter captures the local security policy once per scan.
type SecurityPolicyExporter interface {
	Export(ctx context.Context) (*models.SecurityPolicySnapshot, bool)
}

// AuditPolicyExporter captures the advanced audit policy once per scan.
type AuditPolicyExporter interface {
	Export(ctx context.Context) (*models.AuditPolicySnapshot, bool)
}

// ServiceReader reads the status and start type of one service.
type ServiceReader interface {
	ReadStatus(ctx context.Context, serviceName string) (models.ServiceState, bool)
}

// Bundle groups the four providers the scanner needs.
type Bundle struct {
	Registry       RegistryReader
	SecurityPolicy SecurityPolicyExporter
	AuditPolicy    AuditPolicyExporter
	Services       ServiceReader
}

// NewBundle returns the live providers for the current platform. On
// non-Windows builds every provider reports absent, which keeps the engine
// and its tests runnable anywhere.
func NewBundle(timeout time.Duration) Bundle {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return newPlatformBundle(timeout)
}
