package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage bearer tokens for HTTP clients",
	}

	cmd.AddCommand(newAPIKeyCreateCmd())
	return cmd
}

func newAPIKeyCreateCmd() *cobra.Command {
	var (
		tenantID    string
		token       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a bearer token for a tenant and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(stderrLog)
			if err != nil {
				return err
			}
			defer rt.Close()

			if token == "" {
				token = uuid.NewString()
			}
			if err := rt.apiKeys.Create(cmd.Context(), tenantID, token, description); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant the token authenticates as")
	cmd.Flags().StringVar(&token, "token", "", "token value (generated when empty)")
	cmd.Flags().StringVar(&description, "description", "", "free-form note stored with the key")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
