package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"account-picker/pkg/accounts"
)

type accountView struct {
	ID           string        `json:"id" yaml:"id"`
	Label        string        `json:"label" yaml:"label"`
	Kind         accounts.Kind `json:"kind" yaml:"kind"`
	Email        string        `json:"email,omitempty" yaml:"email,omitempty"`
	MaskedAPIKey string        `json:"masked_api_key,omitempty" yaml:"masked_api_key,omitempty"`
	Active       bool          `json:"active" yaml:"active"`
}

func newAccountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acct"},
		Short:   "Manage the account registry",
	}
	cmd.AddCommand(
		newAccountsListCmd(a),
		newAccountsAddCmd(a),
		newAccountsUseCmd(a),
		newAccountsRemoveCmd(a),
	)
	return cmd
}

func newAccountsListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.directory()
			if err != nil {
				return err
			}
			list, err := dir.ListAccounts()
			if err != nil {
				return err
			}
			return printAccounts(cmd.OutOrStdout(), list, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json|yaml")
	return cmd
}

func printAccounts(w io.Writer, list []accounts.Summary, output string) error {
	views := make([]accountView, 0, len(list))
	for _, s := range list {
		views = append(views, accountView{
			ID:           s.ID,
			Label:        s.Label,
			Kind:         s.Kind,
			Email:        s.Email,
			MaskedAPIKey: s.MaskedAPIKey,
			Active:       s.IsActive,
		})
	}

	switch strings.ToLower(strings.TrimSpace(output)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
	default:
		return fmt.Errorf("unknown output %q (expected table|json|yaml)", output)
	}

	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No accounts registered. Add one with 'account-picker accounts add'.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ACTIVE\tID\tLABEL\tKIND\tDETAIL")
	for _, v := range views {
		active := ""
		if v.Active {
			active = "*"
		}
		detail := v.Email
		if v.Kind == accounts.KindAPIKey {
			detail = v.MaskedAPIKey
		}
		if detail == "" {
			detail = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", active, v.ID, v.Label, v.Kind, detail)
	}
	return tw.Flush()
}

func newAccountsAddCmd(a *app) *cobra.Command {
	var (
		label    string
		kind     string
		email    string
		activate bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an account",
		Long: `Register an account.

For --kind apikey the key is read from the terminal without echo, or from
stdin when it is not a terminal. Only a masked preview is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := accounts.ParseKind(kind)
			if err != nil {
				return err
			}
			na := accounts.NewAccount{Label: label, Kind: k, Email: email}
			if k == accounts.KindAPIKey {
				key, err := readAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				na.APIKey = key
			}

			dir, err := a.directory()
			if err != nil {
				return err
			}
			s, err := dir.Add(na)
			if err != nil {
				return err
			}
			a.logger.Info("account added", "id", s.ID, "kind", s.Kind)
			if activate {
				if err := dir.ActivateAccount(s.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s account %q (%s)\n", s.Kind, s.Label, s.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Display label (required)")
	cmd.Flags().StringVar(&kind, "kind", string(accounts.KindChatGPT), "Account kind: chatgpt|apikey")
	cmd.Flags().StringVar(&email, "email", "", "Email shown for chatgpt accounts")
	cmd.Flags().BoolVar(&activate, "activate", false, "Make the new account active")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func newAccountsUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make an account active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.directory()
			if err != nil {
				return err
			}
			if err := dir.ActivateAccount(args[0]); err != nil {
				return err
			}
			a.logger.Info("account activated", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Active account: %s\n", args[0])
			return nil
		},
	}
}

func newAccountsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an account from the registry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.directory()
			if err != nil {
				return err
			}
			if err := dir.Remove(args[0]); err != nil {
				return err
			}
			a.logger.Info("account removed", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
