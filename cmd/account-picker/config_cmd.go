package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"account-picker/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file in use and the search path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfgUsed != "" {
				fmt.Fprintf(out, "Using: %s\n", a.cfgUsed)
			} else {
				fmt.Fprintln(out, "Using: (none, defaults)")
			}
			fmt.Fprintln(out, "Candidates:")
			for _, c := range config.PathCandidates() {
				fmt.Fprintf(out, "  %s\n", c)
			}
			if p, err := a.cfg.AccountsPath(); err == nil {
				fmt.Fprintf(out, "Accounts: %s\n", p)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
