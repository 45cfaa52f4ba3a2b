//go:build windows

package providers

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/windows/registry"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"wasp/internal/models"
)

func newPlatformBundle(timeout time.Duration) Bundle {
	return Bundle{
		Registry:       &liveRegistry{},
		SecurityPolicy: &liveSecurityPolicy{timeout: timeout},
		AuditPolicy:    &liveAuditPolicy{timeout: timeout},
		Services:       &liveServices{},
	}
}

type liveRegistry struct{}

func (p *liveRegistry) ReadValue(ctx context.Context, path, name string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	root, subPath, ok := splitRegistryPath(path)
	if !ok {
		logDiagnostic("unrecognized registry hive in path: %s", path)
		return "", false
	}

	key, err := registry.OpenKey(root, subPath, registry.QUERY_VALUE)
	if err != nil {
		logDiagnostic("cannot open registry key %s: %v", path, err)
		return "", false
	}
	defer key.Close()

	if s, _, err := key.GetStringValue(name); err == nil {
		return s, true
	}
	if n, _, err := key.GetIntegerValue(name); err == nil {
		return strconv.FormatUint(n, 10), true
	}
	if values, _, err := key.GetStringsValue(name); err == nil {
		return strings.Join(values, ","), true
	}
	logDiagnostic("cannot read registry value %s\\%s", path, name)
	return "", false
}

func splitRegistryPath(path string) (registry.Key, string, bool) {
	p := strings.Trim(path, `\`)
	slash := strings.Index(p, `\`)
	if slash < 0 {
		return 0, "", false
	}
	hive := strings.TrimSuffix(strings.ToUpper(p[:slash]), ":")
	rest := p[slash+1:]
	switch hive {
	case "HKLM", "HKEY_LOCAL_MACHINE":
		return registry.LOCAL_MACHINE, rest, true
	case "HKCU", "HKEY_CURRENT_USER":
		return registry.CURRENT_USER, rest, true
	case "HKU", "HKEY_USERS":
		return registry.USERS, rest, true
	}
	return 0, "", false
}

type liveSecurityPolicy struct {
	timeout time.Duration
}

func (p *liveSecurityPolicy) Export(ctx context.Context) (*models.SecurityPolicySnapshot, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cfgPath := filepath.Join(os.TempDir(), "wasp-secedit-export.inf")
	defer os.Remove(cfgPath)

	cmd := exec.CommandContext(ctx, "secedit", "/export", "/cfg", cfgPath, "/quiet")
	if err := cmd.Run(); err != nil {
		logDiagnostic("secedit export failed: %v", err)
		return nil, false
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		logDiagnostic("cannot read secedit export: %v", err)
		return nil, false
	}

	// secedit writes the export file as UTF-16LE with a BOM.
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	snapshot, err := ParseSecurityPolicyExport(transform.NewReader(bytes.NewReader(data), decoder))
	if err != nil {
		logDiagnostic("cannot parse secedit export: %v", err)
		return nil, false
	}
	logDiagnostic("captured security policy snapshot with %d settings", snapshot.Len())
	return snapshot, true
}

type liveAuditPolicy struct {
	timeout time.Duration
}

func (p *liveAuditPolicy) Export(ctx context.Context) (*models.AuditPolicySnapshot, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "auditpol", "/get", "/category:*", "/r")
	output, err := cmd.Output()
	if err != nil {
		logDiagnostic("auditpol query failed: %v", err)
		return nil, false
	}

	snapshot, err := ParseAuditPolicyCSV(bytes.NewReader(output))
	if err != nil {
		logDiagnostic("cannot parse auditpol report: %v", err)
		return nil, false
	}
	logDiagnostic("captured audit policy snapshot with %d subcategories", snapshot.Len())
	return snapshot, true
}

type liveServices struct{}

func (p *liveServices) ReadStatus(ctx context.Context, serviceName string) (models.ServiceState, bool) {
	if ctx.Err() != nil || serviceName == "" {
		return models.ServiceState{}, false
	}

	m, err := mgr.Connect()
	if err != nil {
		logDiagnostic("cannot connect to service control manager: %v", err)
		return models.ServiceState{}, false
	}
	defer m.Disconnect()

	s, err := m.OpenService(serviceName)
	if err != nil {
		logDiagnostic("cannot open service %s: %v", serviceName, err)
		return models.ServiceState{}, false
	}
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		logDiagnostic("cannot query service %s: %v", serviceName, err)
		return models.ServiceState{}, false
	}
	config, err := s.Config()
	if err != nil {
		logDiagnostic("cannot read config of service %s: %v", serviceName, err)
		return models.ServiceState{}, false
	}

	return models.ServiceState{
		Status:    serviceStateName(status.State),
		StartType: startTypeName(config.StartType),
	}, true
}

func serviceStateName(state svc.State) string {
	switch state {
	case svc.Stopped:
		return "Stopped"
	case svc.StartPending:
		return "StartPending"
	case svc.StopPending:
		return "StopPending"
	case svc.Running:
		return "Running"
	case svc.ContinuePending:
		return "ContinuePending"
	case svc.PausePending:
		return "PausePending"
	case svc.Paused:
		return "Paused"
	}
	return "Unknown"
}

func startTypeName(startType uint32) string {
	switch startType {
	case mgr.StartAutomatic:
		return "Automatic"
	case mgr.StartManual:
		return "Manual"
	case mgr.StartDisabled:
		return "Disabled"
	}
	return "Unknown"
}
