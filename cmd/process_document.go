/*
Copyright © 2025 docqa-be
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"docqa-be/config"
	"docqa-be/service"
	"docqa-be/store"
)

// processDocumentCmd represents the process-document command
var processDocumentCmd = &cobra.Command{
	Use:   "process-document",
	Short: "Process a local PDF without starting the server",
	Long: `Runs the full ingestion pipeline on a local PDF file and prints the
extracted document structure as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		if filePath == "" {
			log.Fatal("--file is required")
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
		pdfService := service.NewPDFService(cfg.RenderDPI)
		docStore := store.NewDocumentStore()
		documentService := service.NewDocumentService(aiService, pdfService, docStore, "", timeout)

		doc, err := documentService.ProcessDocument(context.Background(), content, filepath.Base(filePath))
		if err != nil {
			log.Fatalf("Failed to process document: %v", err)
		}

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal document: %v", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(processDocumentCmd)

	processDocumentCmd.Flags().StringP("file", "f", "", "Path to the PDF file to process")
	processDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
