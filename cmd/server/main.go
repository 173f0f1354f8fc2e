package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/neighborly/backend/internal/config"
	"github.com/neighborly/backend/internal/guard"
	"github.com/neighborly/backend/internal/handler"
	"github.com/neighborly/backend/internal/logging"
	"github.com/neighborly/backend/internal/metrics"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
)

const devUserEmail = "dev@neighborly.local"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	var submitGuard guard.Guard = guard.NewLocalGuard()
	if cfg.RedisURL != "" {
		rg, client, err := guard.NewRedisGuard(cfg.RedisURL)
		if err != nil {
			logging.Fatal("invalid redis url", "error", err)
		}
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, submit guard will fail open", "error", err)
		}
		submitGuard = rg
	}

	m := metrics.New()

	userRepo := repository.NewPgUserRepository(pool)
	householdRepo := repository.NewPgHouseholdRepository(pool)
	vendorRepo := repository.NewPgVendorRepository(pool)
	costRepo := repository.NewPgCostRepository(pool)

	costService := service.NewCostService(costRepo, vendorRepo, userRepo, submitGuard, m, cfg.SubmitTimeout)
	vendorService := service.NewVendorService(vendorRepo)
	householdService := service.NewHouseholdService(userRepo, householdRepo)
	adminCostService := service.NewAdminCostService(costRepo)
	adminUserService := service.NewAdminUserService(userRepo)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)
	roles := auth.LoadRole(func(ctx context.Context, userID string) (auth.Role, error) {
		u, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return auth.Role{}, auth.ErrUnknownUser
		}
		if err != nil {
			return auth.Role{}, err
		}
		return auth.Role{Admin: u.IsAdmin(), Suspended: u.IsSuspended()}, nil
	})

	// Without AUTH_REQUIRED every request acts as the local dev admin.
	requireAuth := auth.RequireAuth(sessionSecret)
	optionalAuth := auth.OptionalAuth(sessionSecret)
	if !cfg.AuthRequired {
		devUser, err := ensureDevUser(ctx, userRepo)
		if err != nil {
			logging.Fatal("failed to prepare dev user", "error", err)
		}
		slog.Warn("AUTH_REQUIRED is off, all requests act as the dev user", "user_id", devUser.ID)
		requireAuth = auth.DevAuth(devUser.ID)
		optionalAuth = requireAuth
	}
	wrapAuth := func(next http.HandlerFunc) http.Handler { return requireAuth(roles(next)) }
	wrapOptional := func(next http.HandlerFunc) http.Handler { return optionalAuth(roles(next)) }
	wrapPreview := auth.PreviewSession(strings.HasPrefix(cfg.FrontendURL, "https://"))

	limiter := handler.NewRateLimiter(ctx, cfg.SubmitRatePerMinute)

	h := handler.New(pool, cfg.FrontendURL)
	costHandler := handler.NewCostHandler(costService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	meHandler := handler.NewMeHandler(householdService)
	adminCostHandler := handler.NewAdminCostHandler(adminCostService)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("GET /api/categories", handler.Categories)
	mux.HandleFunc("GET /api/categories/classify", handler.Classify)

	// Vendor directory and public cost views (sign-in optional)
	mux.Handle("GET /api/vendors", wrapOptional(vendorHandler.List))
	mux.Handle("GET /api/vendors/{id}", wrapOptional(vendorHandler.Get))
	mux.Handle("GET /api/vendors/{id}/costs", wrapOptional(costHandler.VendorCosts))
	mux.Handle("GET /api/vendors/{id}/costs/stats", wrapOptional(costHandler.VendorStats))
	mux.Handle("GET /api/vendors/{id}/costs/form", wrapOptional(costHandler.Form))

	// Resident endpoints
	mux.Handle("POST /api/vendors", wrapAuth(vendorHandler.Create))
	mux.Handle("POST /api/vendors/{id}/costs", limiter.Middleware(wrapAuth(costHandler.Submit)))
	mux.Handle("GET /api/me/costs", wrapAuth(costHandler.MyCosts))
	mux.Handle("PUT /api/me/address", wrapAuth(meHandler.VerifyAddress))
	mux.Handle("GET /api/me/household", wrapAuth(meHandler.Household))

	// Preview: signed-out visitors try the cost form under a cookie session
	mux.Handle("GET /api/preview/vendors/{id}/costs/form", wrapPreview(http.HandlerFunc(costHandler.PreviewForm)))
	mux.Handle("POST /api/preview/vendors/{id}/costs", limiter.Middleware(wrapPreview(http.HandlerFunc(costHandler.PreviewSubmit))))

	// Admin routes (handlers enforce IsAdminFromContext)
	mux.Handle("GET /api/admin/users", wrapAuth(adminUserHandler.List))
	mux.Handle("GET /api/admin/users/{id}", wrapAuth(adminUserHandler.Get))
	mux.Handle("PATCH /api/admin/users/{id}/suspend", wrapAuth(adminUserHandler.Suspend))
	mux.Handle("PATCH /api/admin/vendors/{id}/hidden", wrapAuth(vendorHandler.SetHidden))
	mux.Handle("GET /api/admin/costs", wrapAuth(adminCostHandler.List))
	mux.Handle("DELETE /api/admin/costs/{id}", wrapAuth(adminCostHandler.Delete))
	mux.Handle("POST /api/admin/costs/{id}/restore", wrapAuth(adminCostHandler.Restore))
	mux.Handle("PUT /api/admin/costs/{id}/override", wrapAuth(adminCostHandler.Override))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler.SecurityHeaders(handler.RequestLogger(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.SubmitTimeout + 5*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// ensureDevUser returns the local dev admin, creating it on first run.
func ensureDevUser(ctx context.Context, users repository.UserRepository) (*model.User, error) {
	u, err := users.FindByEmail(ctx, devUserEmail)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	u = &model.User{Email: devUserEmail, Name: "Dev Admin", Role: model.RoleAdmin}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
