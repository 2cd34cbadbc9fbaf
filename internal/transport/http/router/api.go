package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"payroll-api/internal/core/auth"
	"payroll-api/internal/core/server"
	"payroll-api/internal/domain"
	"payroll-api/internal/transport/http/handler"
	mdw "payroll-api/internal/transport/http/middleware"
)

// New wires the full API surface onto one engine. Role gating happens here;
// handlers assume the middleware already authenticated the caller.
func New(l *zap.Logger, authH *handler.AuthHandler, adminH *handler.AdminHandler, salaryH *handler.SalaryHandler, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.POST("/auth/login", authH.Login)

	adminOnly := mdw.AuthJWT(jwter, domain.RoleAdmin)
	users := api.Group("/admin/users")
	{
		users.GET("", mdw.AuthJWT(jwter, domain.RoleAdmin, domain.RoleAccountant), adminH.List)
		users.POST("", adminOnly, adminH.Create)
		users.PUT("/:id", adminOnly, adminH.Update)
		users.DELETE("/:id", adminOnly, adminH.Delete)
		users.PUT("/:id/password", adminOnly, adminH.ResetPassword)
	}

	salary := api.Group("/salary")
	{
		anyRole := mdw.AuthJWT(jwter)
		salary.GET("/history/:userId", anyRole, salaryH.History)
		salary.GET("/average/:userId", anyRole, salaryH.Average)
		salary.GET("/preview", anyRole, salaryH.Preview)
		salary.GET("/all", mdw.AuthJWT(jwter, domain.RoleManager), salaryH.All)
		salary.POST("/accrue", mdw.AuthJWT(jwter, domain.RoleAccountant), salaryH.Accrue)
		salary.PUT("/approve/:id", mdw.AuthJWT(jwter, domain.RoleManager), salaryH.Approve)
	}

	return r
}
