/*
Copyright © 2025 docqa-be
*/
package cmd

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"docqa-be/config"
	"docqa-be/handler"
	"docqa-be/service"
	"docqa-be/store"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document Q&A server",
	Long:  `Starts the HTTP server that ingests PDF documents and answers questions about them`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
		pdfService := service.NewPDFService(cfg.RenderDPI)
		docStore := store.NewDocumentStore()
		documentService := service.NewDocumentService(aiService, pdfService, docStore, cfg.UploadDir, timeout)
		arxivService := service.NewArxivService(cfg.ArxivBaseURL, timeout)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		documentHandler := handler.NewDocumentHandler(documentService, docStore, cfg.MaxUploadSizeMB<<20)
		queryHandler := handler.NewQueryHandler(documentService)
		searchHandler := handler.NewSearchHandler(arxivService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		router.POST("/upload-document", documentHandler.HandleUpload)
		router.GET("/documents/:id", documentHandler.HandleGetDocument)
		router.POST("/query-document", queryHandler.HandleQuery)
		router.POST("/summarize-document", queryHandler.HandleSummarize)
		router.POST("/extract-data", queryHandler.HandleExtract)
		router.POST("/arxiv-search", searchHandler.HandleArxivSearch)

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
