package main

import (
	"github.com/dyne/atbash/internal/dbcipher"
	"github.com/dyne/atbash/internal/inspect"
	"github.com/dyne/atbash/internal/plan"
	"github.com/spf13/cobra"
)

func dbCmd(rootOpts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Cipher text columns of a SQLite database",
	}
	cmd.AddCommand(dbCopyCmd(rootOpts))
	cmd.AddCommand(dbPlanCmd(rootOpts))
	cmd.AddCommand(dbInspectCmd(rootOpts))
	return cmd
}

func dbCopyCmd(rootOpts *globalOptions) *cobra.Command {
	var opts dbcipher.Options
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a SQLite database, ciphering the configured columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}
			opts.Config = s.cfg
			opts.Logger = s.logger
			_, err = dbcipher.Run(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.InPath, "in", "", "input SQLite file")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "output SQLite file")
	cmd.Flags().StringVar(&opts.FKMode, "fk", "on", "foreign key enforcement (on|off)")
	cmd.Flags().StringVar(&opts.Triggers, "triggers", "on", "trigger creation (on|off)")
	cmd.Flags().IntVar(&opts.Jobs, "jobs", 4, "parallelism")
	cmd.Flags().BoolVar(&opts.AllText, "all-text", false, "cipher every text column of tables without column configuration")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func dbPlanCmd(rootOpts *globalOptions) *cobra.Command {
	var inPath string
	var allText bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which columns a copy would cipher",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}
			return plan.Run(cmd.Context(), inPath, s.cfg, allText, cmd.OutOrStdout(), s.logger)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input SQLite file")
	cmd.Flags().BoolVar(&allText, "all-text", false, "cipher every text column of tables without column configuration")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func dbInspectCmd(rootOpts *globalOptions) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List tables and the text columns worth ciphering",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}
			return inspect.Run(cmd.Context(), inPath, cmd.OutOrStdout(), s.logger)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input SQLite file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
