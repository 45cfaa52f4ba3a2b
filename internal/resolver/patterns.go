package resolver

import (
	"regexp"
	"strings"

	"wasp/internal/models"
)

// All natural-language extraction patterns live here, keyed by check kind.
// CIS rule titles embed the data we need, e.g.
//
//	2.3.1.2 (L1) Ensure 'Accounts: Guest account status' is set to 'Disabled'
//	17.1.1 (L1) Ensure 'Audit Credential Validation' is set to 'Success and Failure'
var titlePatterns = map[models.CheckType]*regexp.Regexp{
	models.SecurityPolicyCheck: regexp.MustCompile(`Ensure '([^']+)'`),
	models.AuditPolicyCheck:    regexp.MustCompile(`'Audit ([^']+)'`),
}

// settingNameFromTitle extracts the lookup key a rule's title carries for its
// check kind.
func settingNameFromTitle(kind models.CheckType, title string) (string, bool) {
	re, ok := titlePatterns[kind]
	if !ok {
		return "", false
	}
	m := re.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

// secpolAliases maps CIS display names to the setting keys secedit actually
// writes into its export. The verbatim name is tried first; this table covers
// the well-known System Access and Privilege Rights settings whose export
// keys differ from their display names.
var secpolAliases = map[string]string{
	"enforce password history":                                "PasswordHistorySize",
	"maximum password age":                                    "MaximumPasswordAge",
	"minimum password age":                                    "MinimumPasswordAge",
	"minimum password length":                                 "MinimumPasswordLength",
	"password must meet complexity requirements":              "PasswordComplexity",
	"store passwords using reversible encryption":             "ClearTextPassword",
	"account lockout duration":                                "LockoutDuration",
	"account lockout threshold":                               "LockoutBadCount",
	"reset account lockout counter after":                     "ResetLockoutCount",
	"accounts: administrator account status":                  "EnableAdminAccount",
	"accounts: guest account status":                          "EnableGuestAccount",
	"accounts: rename administrator account":                  "NewAdministratorName",
	"accounts: rename guest account":                          "NewGuestName",
	"network access: allow anonymous sid/name translation":    "LSAAnonymousNameLookup",
	"network security: force logoff when logon hours expire":  "ForceLogoffWhenHourExpire",
	"allow log on locally":                                    "SeInteractiveLogonRight",
	"deny log on locally":                                     "SeDenyInteractiveLogonRight",
	"access this computer from the network":                   "SeNetworkLogonRight",
	"deny access to this computer from the network":           "SeDenyNetworkLogonRight",
	"allow log on through remote desktop services":            "SeRemoteInteractiveLogonRight",
	"deny log on through remote desktop services":             "SeDenyRemoteInteractiveLogonRight",
	"shut down the system":                                    "SeShutdownPrivilege",
	"act as part of the operating system":                     "SeTcbPrivilege",
	"back up files and directories":                           "SeBackupPrivilege",
	"restore files and directories":                           "SeRestorePrivilege",
	"take ownership of files or other objects":                "SeTakeOwnershipPrivilege",
	"debug programs":                                          "SeDebugPrivilege",
	"load and unload device drivers":                          "SeLoadDriverPrivilege",
	"manage auditing and security log":                        "SeSecurityPrivilege",
}

// secpolExportKey translates a display name to its secedit export key, when
// one is known.
func secpolExportKey(displayName string) (string, bool) {
	key, ok := secpolAliases[strings.ToLower(strings.TrimSpace(displayName))]
	return key, ok
}
