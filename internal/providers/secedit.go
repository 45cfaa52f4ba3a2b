package providers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wasp/internal/models"
)

// ParseSecurityPolicyExport parses the INI-style text produced by
// "secedit /export /cfg". Sections like [System Access] and [Privilege
// Rights] hold "Name = Value" lines; [Registry Values] holds
// "MACHINE\path\name=type,data" lines whose data is unwrapped from its type
// prefix so lookups see the plain value.
func ParseSecurityPolicyExport(r io.Reader) (*models.SecurityPolicySnapshot, error) {
	snapshot := models.NewSecurityPolicySnapshot()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if section == "" || section == "Unicode" || section == "Version" {
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 1 {
			continue
		}
		name := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])

		if strings.EqualFold(section, "Registry Values") {
			value = unwrapRegistryData(value)
		} else {
			value = strings.Trim(value, `"`)
		}
		snapshot.Set(section, name, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading security policy export: %w", err)
	}
	if snapshot.Len() == 0 {
		return nil, fmt.Errorf("security policy export contained no settings")
	}
	return snapshot, nil
}

// unwrapRegistryData strips the "type," prefix from a [Registry Values] data
// field. Type 1 (REG_SZ) data is additionally unquoted; multi-string data
// keeps its comma-joined form.
func unwrapRegistryData(raw string) string {
	comma := strings.Index(raw, ",")
	if comma < 0 {
		return raw
	}
	regType := raw[:comma]
	data := raw[comma+1:]
	if regType == "1" {
		data = strings.Trim(data, `"`)
	}
	return data
}
