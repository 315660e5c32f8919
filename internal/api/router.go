package api

import (
	"github.com/frenzy2004/JetSki/internal/api/handler"
	"github.com/frenzy2004/JetSki/internal/api/middleware"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/frenzy2004/JetSki/internal/repository"
	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/gin-gonic/gin"
)

// Deps bundles everything the router needs. Repositories and the exporter may
// be nil when persistence or the export drive is disabled.
type Deps struct {
	Transcripts service.TranscriptFetcher
	Viral       service.MomentFinder
	Storyboards service.StoryboardMaker
	Summaries   service.SummaryWriter
	Renderer    service.PanelRenderer
	Pipeline    handler.PipelineRunner
	Exporter    handler.Exporter
	Videos      *repository.VideoRepository
	Comics      *repository.StoryboardRepository
	Logger      *logger.Logger
	CORS        middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(deps *Deps, mode string) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	transcriptHandler := handler.NewTranscriptHandler(deps.Transcripts)
	analyzeHandler := handler.NewAnalyzeHandler(deps.Transcripts, deps.Viral)
	storyboardHandler := handler.NewStoryboardHandler(deps.Storyboards)
	comicHandler := handler.NewComicHandler(deps.Storyboards, deps.Summaries, deps.Renderer)
	panelsHandler := handler.NewPanelsHandler(deps.Renderer)
	pipelineHandler := handler.NewPipelineHandler(deps.Pipeline)
	exportHandler := handler.NewExportHandler(deps.Exporter, deps.Comics)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Manual flow steps
		v1.POST("/transcript", transcriptHandler.GetTranscript)
		v1.POST("/analyze", analyzeHandler.Analyze)
		v1.POST("/storyboard", storyboardHandler.Generate)
		v1.POST("/comic", comicHandler.Generate)
		v1.POST("/panels", panelsHandler.Render)

		// Full auto flow
		v1.POST("/pipeline", pipelineHandler.Run)

		// Export drive
		v1.POST("/export", exportHandler.Export)

		// History (only when persistence is enabled)
		if deps.Videos != nil && deps.Comics != nil {
			historyHandler := handler.NewHistoryHandler(deps.Videos, deps.Comics)
			v1.GET("/history", historyHandler.ListHistory)
			v1.GET("/comics", historyHandler.ListComics)
			v1.GET("/storyboards/:id", historyHandler.GetStoryboard)
		}
	}

	return r
}
