package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mindcoach/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every stored state record to a JSON file",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import state records from a JSON backup",
	Long: `Import state records from a JSON backup.

Records for users that already exist are overwritten. With --clear every
existing record is deleted first.`,
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd.Flags().StringP("input", "i", "", "Input file path (required)")
	importCmd.Flags().Bool("clear", false, "Clear existing data before import (WARNING: destructive)")
	importCmd.Flags().Bool("yes", false, "Skip the --clear confirmation prompt")
	_ = importCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	// Generate default filename if not provided
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	// Ensure directory exists
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	_, db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	log.Printf("Exporting database to: %s", outputPath)
	if err := service.NewBackupService(db).Export(cmd.Context(), outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if fileInfo, err := os.Stat(outputPath); err == nil {
		log.Printf("Export complete! File size: %.2f MB", float64(fileInfo.Size())/1024/1024)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	clearData, _ := cmd.Flags().GetBool("clear")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	_, db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	backup := service.NewBackupService(db)

	if clearData {
		if !skipConfirm && !confirm(cmd, "WARNING: This will delete all existing data. Type 'yes' to confirm: ") {
			log.Println("Import cancelled")
			return nil
		}
		if _, err := backup.Clear(cmd.Context()); err != nil {
			return err
		}
	}

	log.Printf("Importing database from: %s", inputPath)
	n, err := backup.Import(cmd.Context(), inputPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	total, err := backup.Count(cmd.Context())
	if err != nil {
		return err
	}
	log.Printf("Import complete! %d records imported, %d stored", n, total)
	return nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}
