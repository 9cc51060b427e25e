package config

import (
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// validate performs the structural checks a run depends on: every declared
// operation must carry a known type and the fields that type requires.
func (c *Config) validate() error {
	if len(c.Modules) == 0 {
		return errors.New(errors.ErrConfigValid, "config declares no modules")
	}

	for _, name := range c.moduleOrder {
		mc := c.Modules[name]
		for i, op := range mc.Operations {
			if err := validateOperation(op); err != nil {
				if installErr, ok := err.(*errors.InstallError); ok {
					return installErr.
						WithDetail("module", name).
						WithDetail("operation_index", i)
				}
				return err
			}
		}
	}
	return nil
}

func validateOperation(op types.Operation) error {
	switch op.Type {
	case types.OpCopyDir, types.OpCopyFile:
		if op.Source == "" || op.Target == "" {
			return errors.Newf(errors.ErrConfigValid,
				"%s operation requires source and target", op.Type)
		}
	case types.OpMergeDir:
		if op.Source == "" {
			return errors.Newf(errors.ErrConfigValid,
				"%s operation requires source", op.Type)
		}
	case types.OpMergeJSON:
		if op.Source == "" || op.Target == "" {
			return errors.Newf(errors.ErrConfigValid,
				"%s operation requires source and target", op.Type)
		}
	case types.OpRunCommand:
		if op.Command == "" {
			return errors.Newf(errors.ErrConfigValid,
				"%s operation requires command", op.Type)
		}
	case "":
		return errors.New(errors.ErrConfigValid, "operation is missing a type")
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown operation type: %s", op.Type)
	}
	return nil
}
