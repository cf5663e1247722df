package router

import (
	"github.com/gin-gonic/gin"

	"parseai/internal/handler"
	"parseai/internal/middleware"
)

// Handlers groups the endpoint handlers mounted by Setup.
type Handlers struct {
	Document *handler.DocumentHandler
	Analysis *handler.AnalysisHandler
	Sample   *handler.SampleHandler
	Customer *handler.CustomerHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/", h.Health.Index)
	r.GET("/health", h.Health.Health)

	r.POST("/upload", h.Document.Upload)
	r.GET("/documents/:id/view", h.Document.View)

	analyze := r.Group("/analyze")
	analyze.POST("/comprehensive", h.Analysis.Comprehensive)
	analyze.POST("/single", h.Analysis.Single)
	analyze.POST("/batch", h.Analysis.Batch)
	analyze.POST("/general", h.Analysis.General)
	analyze.POST("/custom", h.Analysis.Custom)
	analyze.POST("/fraud", h.Analysis.Fraud)
	analyze.POST("/fraud-detection", h.Analysis.FraudDetection)
	analyze.POST("/revenue-leakage", h.Analysis.RevenueLeakage)
	analyze.POST("/mismatch", h.Analysis.Mismatch)
	analyze.POST("/xray", h.Analysis.XRay)
	analyze.POST("/fake-document", h.Analysis.FakeDocument)
	analyze.POST("/tampering", h.Analysis.Tampering)
	analyze.POST("/co-document", h.Analysis.CoDocument)

	analysis := r.Group("/analysis/:jobId")
	analysis.GET("/status", h.Analysis.Status)
	analysis.GET("/result", h.Analysis.Result)

	r.GET("/samples/:category", h.Sample.List)
	r.GET("/samples/:category/*blobPath", h.Sample.Download)

	customers := r.Group("/customers")
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.GET("/:id/documents", h.Customer.Documents)
	customers.GET("/:id/documents/*blobPath", h.Customer.Download)

	return r
}
