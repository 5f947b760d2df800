package mockserver

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/infrastructure/logger"
	"github.com/bizdash/bizdash/internal/validate"
)

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(s *Server, zapLogger *zap.Logger) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validate.Register(v); err != nil {
			return nil, err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		logger.Recovery(zapLogger),
		logger.GinMiddleware(zapLogger),
		otelgin.Middleware("bizdash-mockserver"),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", s.Login)

	r.GET("/clients", s.ListClients)
	r.POST("/clients", s.CreateClient)
	r.GET("/clients/:id", s.GetClient)
	r.PUT("/clients/:id", s.UpdateClient)
	r.DELETE("/clients/:id", s.DeleteClient)

	r.GET("/leads", s.ListLeads)
	r.POST("/leads", s.CreateLead)
	r.GET("/leads/:id", s.GetLead)
	r.PUT("/leads/:id", s.UpdateLead)
	r.DELETE("/leads/:id", s.DeleteLead)

	r.GET("/orders", s.ListOrders)
	r.POST("/orders", s.CreateOrder)
	r.GET("/orders/:id", s.GetOrder)
	r.PUT("/orders/:id", s.UpdateOrder)
	r.DELETE("/orders/:id", s.DeleteOrder)

	r.GET("/transactions", s.ListTransactions)
	r.POST("/transactions", s.CreateTransaction)
	r.DELETE("/transactions/:id", s.DeleteTransaction)

	r.GET("/dashboard/stats", s.DashboardStats)
	r.GET("/finance/summary", s.FinanceSummary)

	return r, nil
}
