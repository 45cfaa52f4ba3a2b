package resolver

import (
	"context"
	"fmt"
	"strings"

	"wasp/internal/models"
	"wasp/internal/providers"
)

// Resolution is the authoritative current value of a rule, or the reason no
// value could be obtained. Resolving never fails hard: missing data comes
// back as Found=false with explanatory Details.
type Resolution struct {
	Value   string
	Found   bool
	Details string
	Service *models.ServiceState
}

// Resolver turns a rule into its current value using the two scan-scoped
// snapshots and, where the precedence calls for it, a live provider query.
type Resolver struct {
	providers providers.Bundle
	secpol    *models.SecurityPolicySnapshot
	auditpol  *models.AuditPolicySnapshot
}

// New builds a resolver around the captured snapshots. Either snapshot may be
// nil when its export failed; the affected rules then resolve as absent.
func New(bundle providers.Bundle, secpol *models.SecurityPolicySnapshot, auditpol *models.AuditPolicySnapshot) *Resolver {
	return &Resolver{
		providers: bundle,
		secpol:    secpol,
		auditpol:  auditpol,
	}
}

// Resolve produces the current value for a rule according to its check kind's
// source precedence.
func (r *Resolver) Resolve(ctx context.Context, rule models.Rule) Resolution {
	switch rule.CheckType {
	case models.RegistryCheck:
		return r.resolveRegistry(ctx, rule)
	case models.SecurityPolicyCheck:
		return r.resolveSecurityPolicy(rule)
	case models.AuditPolicyCheck:
		return r.resolveAuditPolicy(rule)
	case models.ServiceCheck:
		return r.resolveService(ctx, rule)
	}
	return Resolution{Details: "unknown check type"}
}

// resolveRegistry prefers the security policy export over a raw registry
// read: the export reflects effective policy, while the registry may be stale
// under Group Policy. The chosen path is recorded in Details.
func (r *Resolver) resolveRegistry(ctx context.Context, rule models.Rule) Resolution {
	if rule.Target == "" || rule.RegistryName == "" {
		return Resolution{Details: "rule is missing registry target or value name"}
	}

	if r.secpol != nil {
		if v, ok := r.secpol.LookupRegistryValue(rule.Target, rule.RegistryName); ok {
			return Resolution{
				Value:   v,
				Found:   true,
				Details: "resolved from security policy export",
			}
		}
	}

	if v, ok := r.providers.Registry.ReadValue(ctx, rule.Target, rule.RegistryName); ok {
		return Resolution{
			Value:   v,
			Found:   true,
			Details: "resolved from live registry read (not present in security policy export)",
		}
	}

	return Resolution{Details: "value not found in security policy export or registry"}
}

// resolveSecurityPolicy looks up the setting name quoted in the rule title,
// first verbatim and then through the display-name alias table. There is no
// registry fallback for this kind.
func (r *Resolver) resolveSecurityPolicy(rule models.Rule) Resolution {
	name, ok := settingNameFromTitle(models.SecurityPolicyCheck, rule.Title)
	if !ok {
		if name = strings.TrimSpace(rule.Target); name == "" {
			return Resolution{Details: "could not extract setting name from rule title"}
		}
	}

	if r.secpol == nil {
		return Resolution{Details: "security policy export unavailable"}
	}

	if v, ok := r.secpol.Lookup(name); ok {
		return Resolution{
			Value:   v,
			Found:   true,
			Details: fmt.Sprintf("resolved from security policy export (%s)", name),
		}
	}
	if key, ok := secpolExportKey(name); ok {
		if v, ok := r.secpol.Lookup(key); ok {
			return Resolution{
				Value:   v,
				Found:   true,
				Details: fmt.Sprintf("resolved from security policy export (%s)", key),
			}
		}
	}

	return Resolution{Details: fmt.Sprintf("setting %q not found in security policy export", name)}
}

// resolveAuditPolicy matches the subcategory named in the rule title against
// the audit snapshot: exact first, then a substring match accepted only when
// it is unambiguous. Multiple candidates are reported, never guessed at.
func (r *Resolver) resolveAuditPolicy(rule models.Rule) Resolution {
	name, ok := settingNameFromTitle(models.AuditPolicyCheck, rule.Title)
	if !ok {
		if name = strings.TrimSpace(rule.Target); name == "" {
			return Resolution{Details: "could not extract audit subcategory from rule title"}
		}
	}

	if r.auditpol == nil {
		return Resolution{Details: "audit policy export unavailable"}
	}

	if v, ok := r.auditpol.Lookup(name); ok {
		return Resolution{
			Value:   v,
			Found:   true,
			Details: fmt.Sprintf("resolved from audit policy export (%s)", name),
		}
	}

	candidates := r.auditpol.Candidates(name)
	switch len(candidates) {
	case 0:
		return Resolution{Details: fmt.Sprintf("subcategory %q not found in audit policy export", name)}
	case 1:
		v, _ := r.auditpol.Lookup(candidates[0])
		return Resolution{
			Value:   v,
			Found:   true,
			Details: fmt.Sprintf("resolved from audit policy export (%s matched %s)", name, candidates[0]),
		}
	}
	return Resolution{
		Details: fmt.Sprintf("ambiguous subcategory %q matches multiple entries: %s",
			name, strings.Join(candidates, ", ")),
	}
}

// resolveService reads the service's status and start type through the
// service control manager. The service name comes from service_name, falling
// back to target.
func (r *Resolver) resolveService(ctx context.Context, rule models.Rule) Resolution {
	name := rule.ServiceName
	if name == "" {
		name = rule.Target
	}
	if name == "" {
		return Resolution{Details: "rule does not name a service"}
	}

	state, ok := r.providers.Services.ReadStatus(ctx, name)
	if !ok {
		return Resolution{Details: fmt.Sprintf("service %q not found or inaccessible", name)}
	}

	return Resolution{
		Value:   fmt.Sprintf("%s (start type: %s)", state.Status, state.StartType),
		Found:   true,
		Details: "resolved from service control manager",
		Service: &state,
	}
}
