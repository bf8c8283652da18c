package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"staylocal/internal/database"
	"staylocal/internal/domain"
	"staylocal/internal/middleware"
	"staylocal/internal/modules/admin"
	"staylocal/internal/modules/auth"
	"staylocal/internal/modules/notification"
	"staylocal/internal/modules/property"
	"staylocal/internal/modules/report"
	"staylocal/internal/modules/reservation"
	"staylocal/internal/modules/ticket"
	jwtsvc "staylocal/internal/pkg/jwt"
	"staylocal/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	reportRepo := repository.NewReportRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo, userRepo)
	propertyHandler := property.NewHandler(propertyService)

	reservationService := reservation.NewService(reservationRepo, propertyRepo, userRepo, notificationService)
	reservationHandler := reservation.NewHandler(reservationService)

	ticketService := ticket.NewService(ticketRepo, notificationService)
	ticketHandler := ticket.NewHandler(ticketService)

	adminService := admin.NewService(userRepo, propertyRepo, notificationService)
	adminHandler := admin.NewHandler(adminService)

	reportService := report.NewService(reportRepo)
	reportHandler := report.NewHandler(reportService)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		propertyHandler.RegisterPublicRoutes(v1)

		// any authenticated user
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			ticketHandler.RegisterRoutes(protected)
		}

		// hosts and admins
		hosts := v1.Group("/")
		hosts.Use(middleware.JWTAuth(j, userRepo))
		hosts.Use(middleware.RequireRole(domain.RoleHost, domain.RoleAdmin))
		{
			propertyHandler.RegisterHostRoutes(hosts)
			reportHandler.RegisterHostRoutes(hosts)
		}

		// admins only
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j, userRepo))
		adminGroup.Use(middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			reservationHandler.RegisterAdminRoutes(adminGroup)
			ticketHandler.RegisterAdminRoutes(adminGroup)
			reportHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("starting addr=%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
