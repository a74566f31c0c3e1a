package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mindcoach/internal/catalog"
	"mindcoach/internal/repository"
	"mindcoach/internal/service"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the weekly progress e-mail to every opted-in user",
	RunE:  runDigest,
}

func init() {
	digestCmd.Flags().Int("concurrency", 4, "Maximum e-mails sent at once (default DIGEST_CONCURRENCY)")
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	concurrency := cfg.DigestConcurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	email, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		return err
	}
	if !email.IsEnabled() {
		return fmt.Errorf("SES_FROM_EMAIL is not configured")
	}

	states, err := service.NewStateService(repository.NewStateRepository(db), cfg.StateCacheSize, cfg.StateCacheTTL, nil, nil, cfg.Location)
	if err != nil {
		return err
	}
	practice := service.NewPracticeService(c, states)

	summary, err := service.NewDigestService(states, practice, email, nil, concurrency).Run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
