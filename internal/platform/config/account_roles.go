package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// RoleMapping maps well-known roles and tax codes to chart-of-accounts codes.
type RoleMapping struct {
	Roles       map[domain.AccountRole]string `yaml:"roles"`
	TaxAccounts map[string]string             `yaml:"tax_accounts"`
}

// LoadRoleMapping reads a role mapping file.
func LoadRoleMapping(path string) (*RoleMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read account role file %s: %w", path, err)
	}
	return ParseRoleMapping(raw)
}

// ParseRoleMapping decodes a role mapping document. Unknown keys are rejected so that a typo in
// a role name fails at startup.
func ParseRoleMapping(raw []byte) (*RoleMapping, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var m RoleMapping
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse account role mapping: %w", err)
	}
	known := make(map[domain.AccountRole]bool, len(domain.AllAccountRoles))
	for _, r := range domain.AllAccountRoles {
		known[r] = true
	}
	for role := range m.Roles {
		if !known[role] {
			return nil, fmt.Errorf("unknown account role %q in mapping", role)
		}
	}
	return &m, nil
}
