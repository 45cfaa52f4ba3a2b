package providers

import (
	"strings"
	"testing"
)

const sampleExport = `[Unicode]
Unicode=yes
[System Access]
MinimumPasswordAge = 1
MaximumPasswordAge = 365
MinimumPasswordLength = 14
PasswordComplexity = 1
PasswordHistorySize = 24
LockoutBadCount = 5
EnableGuestAccount = 0
NewAdministratorName = "LocalAdmin"
[Event Audit]
AuditSystemEvents = 3
[Registry Values]
MACHINE\System\CurrentControlSet\Control\Lsa\LimitBlankPasswordUse=4,1
MACHINE\System\CurrentControlSet\Control\Lsa\NoLMHash=4,1
MACHINE\Software\Microsoft\Windows NT\CurrentVersion\Winlogon\ScreenSaverGracePeriod=1,"5"
[Privilege Rights]
SeInteractiveLogonRight = *S-1-5-32-544,*S-1-5-32-545
SeDebugPrivilege = *S-1-5-32-544
[Version]
signature="$CHICAGO$"
Revision=1
`

func TestParseSecurityPolicyExport(t *testing.T) {
	snapshot, err := ParseSecurityPolicyExport(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseSecurityPolicyExport() error = %v", err)
	}

	tests := []struct {
		name    string
		lookup  string
		want    string
		present bool
	}{
		{"system access value", "MinimumPasswordLength", "14", true},
		{"case insensitive key", "minimumpasswordlength", "14", true},
		{"quoted string unwrapped", "NewAdministratorName", "LocalAdmin", true},
		{"privilege right", "SeInteractiveLogonRight", "*S-1-5-32-544,*S-1-5-32-545", true},
		{"event audit", "AuditSystemEvents", "3", true},
		{"absent setting", "NoSuchSetting", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := snapshot.Lookup(tt.lookup)
			if ok != tt.present {
				t.Fatalf("Lookup(%q) present = %v, want %v", tt.lookup, ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.lookup, got, tt.want)
			}
		})
	}
}

func TestParseSecurityPolicyExportRegistryValues(t *testing.T) {
	snapshot, err := ParseSecurityPolicyExport(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseSecurityPolicyExport() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		value   string
		want    string
		present bool
	}{
		{
			"dword via HKLM colon prefix",
			`HKLM:\System\CurrentControlSet\Control\Lsa`,
			"LimitBlankPasswordUse", "1", true,
		},
		{
			"dword via long hive name",
			`HKEY_LOCAL_MACHINE\System\CurrentControlSet\Control\Lsa`,
			"NoLMHash", "1", true,
		},
		{
			"sz value unquoted",
			`HKLM:\Software\Microsoft\Windows NT\CurrentVersion\Winlogon`,
			"ScreenSaverGracePeriod", "5", true,
		},
		{
			"absent value",
			`HKLM:\System\CurrentControlSet\Control\Lsa`,
			"NoSuchValue", "", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := snapshot.LookupRegistryValue(tt.path, tt.value)
			if ok != tt.present {
				t.Fatalf("LookupRegistryValue(%q, %q) present = %v, want %v", tt.path, tt.value, ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("LookupRegistryValue(%q, %q) = %q, want %q", tt.path, tt.value, got, tt.want)
			}
		})
	}
}

func TestParseSecurityPolicyExportEmpty(t *testing.T) {
	if _, err := ParseSecurityPolicyExport(strings.NewReader("[Unicode]\nUnicode=yes\n")); err == nil {
		t.Error("ParseSecurityPolicyExport() on empty export: error = nil, want error")
	}
}
