package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/infrastructure/crontab"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/journalrepo"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/profilerepo"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive old journal entries",
	Long: `Mark journal entries older than --older-than as archived. Archived entries are
excluded from recall and search. Without --owner every owner is processed.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().String("owner", "", "Owner uuid; all owners when empty")
	archiveCmd.Flags().Duration("older-than", 0, "Minimum entry age, for example 720h")
	_ = archiveCmd.MarkFlagRequired("older-than")
}

func runArchive(cmd *cobra.Command, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	age, _ := cmd.Flags().GetDuration("older-than")
	if age <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}
	if owner != "" {
		parsed, err := uuid.Parse(owner)
		if err != nil {
			return fmt.Errorf("--owner must be a uuid: %w", err)
		}
		owner = parsed.String()
	}

	cfg, log, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// archiving never embeds, so the journal store runs without a provider
	journalService := journal.NewService(journalrepo.NewJournalGormRepository(db), nil, journal.Config{}, log)

	start := time.Now()
	var count int64
	if owner != "" {
		count, err = journalService.ArchiveOlderThan(cmd.Context(), owner, age)
	} else {
		profiles := profile.NewService(profilerepo.NewProfileGormRepository(db), log)
		count, err = crontab.ArchiveAll(cmd.Context(), profiles, journalService, age, log)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "archived %d entries in %s\n", count, time.Since(start).Round(time.Millisecond))
	return nil
}
