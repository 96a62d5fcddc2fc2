package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gorcframe/internal/project"
	"github.com/spf13/cobra"
)

var (
	initFlags projectFlags

	initName  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a project file with the default inputs",
	Long: `Write project.yaml into dir (the current directory by default).

Any design flag given here replaces the default in the written file, so
a project can be started from the command line and refined in YAML.

Examples:
  gorcframe init
  gorcframe init tower --name "Tower A" --floors 12 --span-x 7.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initFlags.register(initCmd, allGroups)

	initCmd.Flags().StringVar(&initName, "name", "", "Project name")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing project file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, project.FileName)

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return NewExitError(ExitFailure, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return WrapExitError(ExitFailure, "checking project file", err)
		}
	}

	p, err := initFlags.project(cmd)
	if err != nil {
		return WrapExitError(ExitFailure, "reading inputs", err)
	}
	if initName != "" {
		p.Name = initName
	}
	if err := p.Validate(); err != nil {
		return WrapExitError(ExitFailure, "invalid inputs", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WrapExitError(ExitFailure, "creating project directory", err)
	}
	if err := p.Save(path); err != nil {
		return WrapExitError(ExitFailure, "writing project file", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Project written to: %s\n", path)
	return nil
}
