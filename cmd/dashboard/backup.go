package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/aitoolsdash/dashboard/internal/backup"
	"github.com/aitoolsdash/dashboard/internal/di"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the catalog as a backup document",
	Long: `Writes the whole catalog as a versioned backup document.
Without a file argument the document goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importOpts struct {
	mode          string
	mergeStrategy string
	dryRun        bool
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the catalog from a backup document",
	Long: `Restores the catalog from a backup document.

Modes:
  - full:  replace the catalog with the document (default)
  - merge: add the document to the catalog; --merge-strategy picks the
           winner when ids collide (keep_local or keep_backup)`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backup files in the data directory",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a new backup file",
	Args:  cobra.NoArgs,
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup files, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

func init() {
	importCmd.Flags().StringVar(&importOpts.mode, "mode", string(backup.RestoreModeFull), "Restore mode (full, merge)")
	importCmd.Flags().StringVar(&importOpts.mergeStrategy, "merge-strategy", string(backup.MergeKeepLocal), "Conflict strategy for merge mode (keep_local, keep_backup)")
	importCmd.Flags().BoolVar(&importOpts.dryRun, "dry-run", false, "Validate and report without writing")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
}

// withBackupService bootstraps the container without the HTTP server and
// hands fn the backup service. Storage is closed when fn returns.
func withBackupService(fn func(*backup.Service) error) (err error) {
	injector := di.NewContainer(flags)
	defer func() {
		if report := injector.Shutdown(); !report.Succeed && err == nil {
			err = report
		}
	}()

	if err := di.Bootstrap(injector); err != nil {
		return err
	}
	svc, err := do.Invoke[*backup.Service](injector)
	if err != nil {
		return err
	}
	return fn(svc)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withBackupService(func(svc *backup.Service) error {
		data, err := json.MarshalIndent(svc.Export(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode backup: %w", err)
		}
		data = append(data, '\n')

		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0o600); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported catalog to %s\n", args[0])
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	opts := backup.RestoreOptions{
		Mode:          backup.RestoreMode(importOpts.mode),
		MergeStrategy: backup.MergeStrategy(importOpts.mergeStrategy),
		DryRun:        importOpts.dryRun,
	}
	if !opts.Mode.Valid() {
		return fmt.Errorf("unknown mode %q", importOpts.mode)
	}
	if !opts.MergeStrategy.Valid() {
		return fmt.Errorf("unknown merge strategy %q", importOpts.mergeStrategy)
	}

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	return withBackupService(func(svc *backup.Service) error {
		result, err := svc.Import(cmd.Context(), doc, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.DryRun {
			fmt.Fprintln(out, "Dry run, nothing written")
		}
		fmt.Fprintf(out, "Imported: %d categories, %d tools, %d prompts\n",
			result.Imported.Categories, result.Imported.Tools, result.Imported.Prompts)
		fmt.Fprintf(out, "Skipped:  %d categories, %d tools, %d prompts\n",
			result.Skipped.Categories, result.Skipped.Tools, result.Skipped.Prompts)
		if result.Repaired > 0 {
			fmt.Fprintf(out, "Repaired: %d dangling references\n", result.Repaired)
		}
		return nil
	})
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	return withBackupService(func(svc *backup.Service) error {
		result, err := svc.Create(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.ID, result.Path)
		return nil
	})
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	return withBackupService(func(svc *backup.Service) error {
		backups, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		return printBackups(cmd.OutOrStdout(), backups)
	})
}

func printBackups(w io.Writer, backups []backup.BackupInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSIZE")
	for _, b := range backups {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04:05"), b.Size)
	}
	return tw.Flush()
}

func readDocument(path string) (*backup.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	var doc backup.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", backup.ErrInvalidDocument, err)
	}
	return &doc, nil
}
