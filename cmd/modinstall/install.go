package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/config"
	"github.com/arthur-debert/modinstall/pkg/installer"
	"github.com/arthur-debert/modinstall/pkg/paths"
	"github.com/arthur-debert/modinstall/pkg/postinstall"
)

func newInstallCmd() *cobra.Command {
	var (
		installDir string
		moduleArg  string
		force      bool
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(installDir, moduleArg, force)
		},
	}

	cmd.Flags().StringVar(&installDir, "install-dir", paths.DefaultInstallDir, "Installation directory")
	cmd.Flags().StringVar(&moduleArg, "module", "", "Comma-separated modules to install, or 'all' for all enabled")
	cmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")

	return cmd
}

func runInstall(installDir, moduleArg string, force bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	modules, err := installer.SelectModules(cfg, moduleArg)
	if err != nil {
		return err
	}

	ctx, err := paths.NewExecutionContext(paths.ContextOptions{
		ConfigPath:       configPath,
		InstallDirFlag:   installDir,
		ConfigInstallDir: cfg.InstallDir,
		ConfigLogFile:    cfg.LogFile,
		Force:            force,
	})
	if err != nil {
		return err
	}

	if err := paths.EnsureInstallDir(ctx.InstallDir); err != nil {
		return err
	}

	audit := auditlog.New(ctx.LogFile)
	runner := installer.New(installer.Options{Audit: audit})

	if _, err := runner.Run(ctx, modules); err != nil {
		return err
	}

	if postinstall.DownloadWrapper(audit) {
		postinstall.AddToPath(audit)
	}
	postinstall.InstallNpmPackages(cfg.NpmPackages, audit)

	pterm.Println()
	pterm.Printf("Installation completed. Log: %s\n", ctx.LogFile)
	return nil
}
