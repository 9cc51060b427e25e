package installer

import (
	"strings"

	"github.com/arthur-debert/modinstall/pkg/config"
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// SelectModules picks the modules a run should process. An empty or "all"
// argument selects every enabled module in declaration order. A
// comma-separated list selects exactly those modules in the order given,
// including disabled ones, since naming a module is an explicit request.
// An unknown name is a config error.
func SelectModules(cfg *config.Config, moduleArg string) ([]types.Module, error) {
	arg := strings.TrimSpace(moduleArg)
	if arg == "" || strings.EqualFold(arg, "all") {
		var enabled []types.Module
		for _, m := range cfg.ModulesInOrder() {
			if m.Enabled {
				enabled = append(enabled, m)
			}
		}
		return enabled, nil
	}

	var selected []types.Module
	seen := make(map[string]bool)
	for _, part := range strings.Split(arg, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		m, ok := cfg.Module(name)
		if !ok {
			return nil, errors.Newf(errors.ErrModuleNotFound, "module %q not found", name)
		}
		selected = append(selected, m)
		seen[name] = true
	}
	return selected, nil
}
