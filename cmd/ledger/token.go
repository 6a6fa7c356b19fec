package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/arledger/internal/config"
	"github.com/MrJamesThe3rd/arledger/internal/http/auth"
)

func newTokenCommand() *cobra.Command {
	var (
		subject  string
		accounts []string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token signed with AUTH_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cfg.Auth.Secret == "" {
				return errors.New("AUTH_SECRET is not set")
			}

			ids := make([]uuid.UUID, 0, len(accounts))

			for _, a := range accounts {
				id, err := uuid.Parse(a)
				if err != nil {
					return fmt.Errorf("invalid --account %q: %w", a, err)
				}

				ids = append(ids, id)
			}

			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			token, err := auth.New(cfg.Auth.Secret, log).Issue(subject, ids, time.Now(), ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Who the token is issued to")
	cmd.Flags().StringSliceVar(&accounts, "account", nil, "Restrict the token to this account ID (repeatable)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
