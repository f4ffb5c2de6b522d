package bootstrap

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/CodeLab-25-26J-102/workspace-backend/internal/api/http"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/api/http/middleware"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/execution"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/files"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/ownership"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/projects"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/users"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/workspace"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	CORSOrigins   string
	RunsPerMinute int
	DB            *pgxpool.Pool
	Redis         *goredis.Client
	Judge         *execution.Client
	JudgeStatus   httpapi.JudgeStatus
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(dep.CORSOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id", "X-User-Id", "X-User-Email", "X-User-Name"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.JudgeStatus)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	fileRepo := files.NewRepo(dep.DB)
	guard := ownership.NewGuard(projectRepo, fileRepo)

	api := r.Group("/api")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimit(rate.Limit(50), 100))
	api.Use(auth.WithUser(userRepo))

	auth.RegisterUserRoutes(api, userRepo)

	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, projectRepo)

	filesGroup := api.Group("/files")
	fileHandler := files.Register(filesGroup, fileRepo, guard)
	fileHandler.RegisterProjectSubroutes(projectsGroup)

	runner := execution.NewService(dep.Judge)
	quota := execution.NewQuota(dep.Redis, dep.RunsPerMinute, time.Minute)
	execution.Register(api, runner, quota)

	workflow := workspace.NewWorkflow(guard, projectRepo, fileRepo)
	workspace.Register(api, fileRepo, workflow)

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:5173"}
	}
	return out
}
