package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/internal/config"
)

var configUser bool

func init() {
	initCmd := newConfigInitCmd()
	initCmd.Flags().BoolVar(&configUser, "user", false, "Write ~/.partkit/config.yaml instead of ./.partkit.yaml")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the partkit config file",
	}
	cmd.AddCommand(initCmd)
	rootCmd.AddCommand(cmd)
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with every setting at its default",
		Long: `The init command writes a commented config file listing every key
with its default value. An existing file is left untouched.

Without a path the file is ./.partkit.yaml, or ~/.partkit/config.yaml with
--user.

Example:
  partctl config init
  partctl config init --user
  partctl config init boards/s3/.partkit.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(args)
		},
	}
}

func runConfigInit(args []string) error {
	path := config.LocalFileName
	switch {
	case len(args) == 1:
		path = args[0]
	case configUser:
		user, err := config.UserPath()
		if err != nil {
			return err
		}
		path = user
	}

	wrote, err := config.WriteDefault(path)
	if err != nil {
		return err
	}
	if !wrote {
		printInfo("%s already exists, left unchanged\n", path)
		return nil
	}
	printInfo("%s Wrote %s\n", paint(okStyle, "✓"), path)
	return nil
}
