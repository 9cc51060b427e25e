package config

import (
	"github.com/arthur-debert/modinstall/pkg/types"
)

// Config is the parsed installer configuration. Modules preserves the
// document's declaration order through ModuleOrder, which drives the order
// modules run in.
type Config struct {
	InstallDir  string                  `koanf:"install_dir"`
	LogFile     string                  `koanf:"log_file"`
	NpmPackages []string                `koanf:"npm_packages"`
	Modules     map[string]ModuleConfig `koanf:"modules"`

	moduleOrder []string
}

// ModuleConfig is one module as declared in the config document.
type ModuleConfig struct {
	Enabled     bool              `koanf:"enabled"`
	Description string            `koanf:"description"`
	Operations  []types.Operation `koanf:"operations"`
}

// ModuleOrder returns module names in declaration order.
func (c *Config) ModuleOrder() []string {
	return c.moduleOrder
}

// Module returns the named module, reporting whether it is declared.
func (c *Config) Module(name string) (types.Module, bool) {
	mc, ok := c.Modules[name]
	if !ok {
		return types.Module{}, false
	}
	return types.Module{
		Name:        name,
		Enabled:     mc.Enabled,
		Description: mc.Description,
		Operations:  mc.Operations,
	}, true
}

// ModulesInOrder returns every declared module in declaration order.
func (c *Config) ModulesInOrder() []types.Module {
	modules := make([]types.Module, 0, len(c.moduleOrder))
	for _, name := range c.moduleOrder {
		if m, ok := c.Module(name); ok {
			modules = append(modules, m)
		}
	}
	return modules
}
