package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"wordquiz/internal/config"
	"wordquiz/internal/repository"
	"wordquiz/internal/service"
	"wordquiz/internal/utils"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")

	// Reset flags
	resetForce := resetCmd.Bool("force", false, "Skip the confirmation prompt")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Open the configured progress storage
	repo, closeStorage, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open progress storage: %v", err)
	}
	defer closeStorage()

	if cfg.StorageBackend == "memory" || cfg.StorageBackend == "" {
		log.Println("Warning: STORAGE_BACKEND is memory; nothing outlives this command")
	}

	progressService := service.NewProgressService(repo, utils.NewSystemClock(cfg.Location))
	backupService := service.NewBackupService(progressService, cfg.ProfileID)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, backupService, *importInput)

	case "reset":
		resetCmd.Parse(os.Args[2:])
		handleReset(ctx, progressService, cfg.ProfileID, *resetForce)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting progress to: %s", outputPath)
	if err := backupService.Export(ctx, outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, err := os.Stat(outputPath)
	if err == nil {
		log.Printf("Export complete! File size: %d bytes", fileInfo.Size())
	}
}

func handleImport(ctx context.Context, backupService *service.BackupService, inputPath string) {
	// Check if file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if err := backupService.Import(ctx, inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import complete!")
}

func handleReset(ctx context.Context, progressService *service.ProgressService, profileID string, force bool) {
	if !force {
		fmt.Printf("WARNING: This will reset all progress of profile %q. Type 'yes' to confirm: ", profileID)
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Reset cancelled")
			return
		}
	}

	if err := progressService.ResetProgress(ctx); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	log.Println("Reset complete!")
}

func printUsage() {
	fmt.Println("WordQuiz Progress Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [-output file.json]")
	fmt.Println("  backup import -input file.json")
	fmt.Println("  backup reset [-force]")
	fmt.Println()
	fmt.Println("Storage is selected with STORAGE_BACKEND and the related variables (see .env.example).")
}
