package models

import (
	"sort"
	"strings"
)

// SecurityPolicySnapshot is a point-in-time capture of the host's exported
// local security policy (secedit), keyed by section and setting name. It is
// captured once per scan and read-only afterwards.
type SecurityPolicySnapshot struct {
	sections map[string]map[string]entry
}

type entry struct {
	name  string
	value string
}

func NewSecurityPolicySnapshot() *SecurityPolicySnapshot {
	return &SecurityPolicySnapshot{sections: make(map[string]map[string]entry)}
}

// Set records a setting under a section. Lookups are case-insensitive on both
// section and setting name.
func (s *SecurityPolicySnapshot) Set(section, name, value string) {
	key := strings.ToLower(section)
	if s.sections[key] == nil {
		s.sections[key] = make(map[string]entry)
	}
	s.sections[key][strings.ToLower(name)] = entry{name: name, value: value}
}

// Lookup searches every section for a setting name and returns the first hit.
func (s *SecurityPolicySnapshot) Lookup(name string) (string, bool) {
	key := strings.ToLower(name)
	for _, section := range s.sections {
		if e, ok := section[key]; ok {
			return e.value, true
		}
	}
	return "", false
}

// LookupIn searches a single section for a setting name.
func (s *SecurityPolicySnapshot) LookupIn(section, name string) (string, bool) {
	e, ok := s.sections[strings.ToLower(section)][strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return e.value, true
}

// LookupRegistryValue resolves a registry-backed policy setting from the
// [Registry Values] section of a secedit export. The export keys registry
// entries as MACHINE\<path>\<value name>, so the rule's hive prefix is
// normalized before the lookup.
func (s *SecurityPolicySnapshot) LookupRegistryValue(path, name string) (string, bool) {
	p := normalizeRegistryPath(path)
	if p == "" || name == "" {
		return "", false
	}
	return s.LookupIn("Registry Values", p+`\`+name)
}

func normalizeRegistryPath(path string) string {
	p := strings.Trim(path, `\`)
	for prefix, repl := range map[string]string{
		`hkey_local_machine`: "MACHINE",
		`hklm:`:              "MACHINE",
		`hklm`:               "MACHINE",
		`hkey_current_user`:  "USER",
		`hkcu:`:              "USER",
		`hkcu`:               "USER",
	} {
		lower := strings.ToLower(p)
		if strings.HasPrefix(lower, prefix+`\`) {
			return repl + p[len(prefix):]
		}
	}
	return p
}

// Len reports the number of captured settings across all sections.
func (s *SecurityPolicySnapshot) Len() int {
	n := 0
	for _, section := range s.sections {
		n += len(section)
	}
	return n
}

// AuditPolicySnapshot is a point-in-time capture of the host's advanced audit
// policy, keyed by subcategory name.
type AuditPolicySnapshot struct {
	values map[string]string
	names  map[string]string
}

func NewAuditPolicySnapshot() *AuditPolicySnapshot {
	return &AuditPolicySnapshot{
		values: make(map[string]string),
		names:  make(map[string]string),
	}
}

// Set records a subcategory setting. The first value seen for a subcategory
// wins; duplicates are never silently overwritten.
func (s *AuditPolicySnapshot) Set(subcategory, value string) {
	key := strings.ToLower(strings.TrimSpace(subcategory))
	if key == "" {
		return
	}
	if _, ok := s.values[key]; ok {
		return
	}
	s.values[key] = value
	s.names[key] = strings.TrimSpace(subcategory)
}

// Lookup returns the setting for an exact (case-insensitive) subcategory name.
func (s *AuditPolicySnapshot) Lookup(subcategory string) (string, bool) {
	v, ok := s.values[strings.ToLower(strings.TrimSpace(subcategory))]
	return v, ok
}

// Candidates returns the subcategory names that contain, or are contained by,
// the given name, sorted for deterministic reporting.
func (s *AuditPolicySnapshot) Candidates(name string) []string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var out []string
	for key, orig := range s.names {
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			out = append(out, orig)
		}
	}
	sort.Strings(out)
	return out
}

// Len reports the number of captured subcategories.
func (s *AuditPolicySnapshot) Len() int {
	return len(s.values)
}

// ServiceState is the current status and start type of a Windows service.
type ServiceState struct {
	Status    string `json:"status"`
	StartType string `json:"start_type"`
}
