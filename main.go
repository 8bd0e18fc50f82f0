package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/zenilop-regex/ai-tax-agent/client"
	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/handler"
	"github.com/zenilop-regex/ai-tax-agent/logging"
	"github.com/zenilop-regex/ai-tax-agent/schema"
	"github.com/zenilop-regex/ai-tax-agent/service"
	"github.com/zenilop-regex/ai-tax-agent/tax"
)

func main() {
	logger := logging.New("ai-tax-agent", os.Getenv("GIN_MODE") != "release")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	var ocrClient *client.TesseractClient
	if cfg.OCREnabled {
		os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)
		ocrClient = client.NewTesseractClient(cfg.TesseractDataPath)
	}

	llmClient := client.NewLLMClient(cfg.LLM, logging.WithComponent(logger, "llm_client"))

	pdfProcessor := service.NewPDFProcessor(ocrClient, logging.WithComponent(logger, "pdf_processor"))
	validator := service.NewValidator(cfg.Tax)
	llmExtractor := service.NewLLMExtractor(llmClient, cfg.LLM, logging.WithComponent(logger, "llm_extractor"))
	form16Service := service.NewForm16Service(pdfProcessor, validator, llmExtractor, logging.WithComponent(logger, "form16"))

	schemaValidator, err := schema.NewValidator()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to compile ITR-1 schema")
	}
	mapper := service.NewITRMapper(cfg.Tax, schemaValidator, logging.WithComponent(logger, "mapper"))
	overrideService := service.NewOverrideService(cfg.Tax, logging.WithComponent(logger, "overrides"))
	recommender := service.NewRecommender(cfg.Tax, logging.WithComponent(logger, "recommender"))
	calculator := tax.NewCalculator(cfg.Tax)

	form16Handler := handler.NewForm16Handler(form16Service, cfg.MaxFileSize, logging.WithComponent(logger, "form16_handler"))
	itrHandler := handler.NewITRHandler(mapper, overrideService, recommender, logging.WithComponent(logger, "itr_handler"))
	taxHandler := handler.NewTaxHandler(calculator, logging.WithComponent(logger, "tax_handler"))

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "AI Tax Agent",
		})
	})

	api := router.Group("/api/v1")
	{
		form16 := api.Group("/form16")
		{
			form16.POST("/extract", form16Handler.Extract)
		}

		itr := api.Group("/itr")
		{
			itr.POST("/generate", itrHandler.Generate)
			itr.POST("/overrides", itrHandler.ApplyOverrides)
			itr.POST("/recommendations", itrHandler.Recommendations)
		}

		taxGroup := api.Group("/tax")
		{
			taxGroup.POST("/compare", taxHandler.Compare)
		}
	}

	logger.Info().Str("port", cfg.ServerPort).Msg("starting AI Tax Agent service")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
