package authz

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/iota-projects/pkg/configuration"
)

//go:embed roles.yaml
var defaultRoles []byte

// Config captures all inputs necessary to initialize the Casbin enforcer.
type Config struct {
	// RolesPath points to a YAML role→permissions file; the embedded defaults are used when empty.
	RolesPath string
	Mode      Mode
	Logger    *logrus.Logger
}

// RoleSet maps role names to the permissions they grant.
type RoleSet map[string][]string

// DefaultConfig builds a Config using the global configuration singleton.
func DefaultConfig() Config {
	cfg := configuration.Use()
	return Config{
		RolesPath: cfg.Authz.RolesPath,
		Mode:      sanitizeMode(Mode(cfg.Authz.Mode)),
		Logger:    cfg.Logger(),
	}
}

func (c Config) roles() (RoleSet, error) {
	data := defaultRoles
	if strings.TrimSpace(c.RolesPath) != "" {
		raw, err := os.ReadFile(filepath.Clean(c.RolesPath))
		if err != nil {
			return nil, configError("failed to read roles file %q: %v", c.RolesPath, err)
		}
		data = raw
	}
	return ParseRoles(data)
}

// ParseRoles decodes a roles document of the form `roles: {name: [permission, ...]}`.
func ParseRoles(data []byte) (RoleSet, error) {
	var doc struct {
		Roles map[string][]string `yaml:"roles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, configError("invalid roles document: %v", err)
	}
	if len(doc.Roles) == 0 {
		return nil, configError("roles document defines no roles")
	}
	out := make(RoleSet, len(doc.Roles))
	for name, perms := range doc.Roles {
		name = NormalizeName(name)
		if name == "" {
			return nil, configError("role with empty name")
		}
		for _, p := range perms {
			if p = NormalizeName(p); p != "" {
				out[name] = append(out[name], p)
			}
		}
	}
	return out, nil
}
