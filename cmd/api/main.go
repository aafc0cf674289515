//   This project is the class information backend: homework and assessment notices, the weekly timetable and school meals.
//   Class Info Copyright (C) 2025 Class Info contributors
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classinfo/internal/auth"
	"classinfo/internal/common"
	"classinfo/internal/database"
	"classinfo/internal/env"
	"classinfo/internal/logger"
	"classinfo/internal/scheduler"
	"classinfo/internal/schoolapi"
	"classinfo/internal/storage"
	"classinfo/internal/v0/files"
	"classinfo/internal/v0/meals"
	"classinfo/internal/v0/notices"
	"classinfo/internal/v0/timetable"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	env.Load()
	logger.Init(env.GetEnv(env.EnvLogLevel, "info"))

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(env.GetEnv(env.EnvDatabasePath, env.DefaultDatabasePath))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	common.InitValidator()
	if err := notices.RegisterValidators(common.Validator()); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}
	if err := meals.RegisterValidators(common.Validator()); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Attachment storage is optional; uploads answer 503 without it
	var objectStore files.ObjectStore
	if bucket := env.GetEnv(env.EnvB2Bucket, ""); bucket != "" {
		b2, err := storage.Init(ctx,
			env.GetEnv(env.EnvB2AccountID, ""),
			env.GetEnv(env.EnvB2ApplicationKey, ""),
			bucket,
			env.GetEnv(env.EnvFilesPublicBaseURL, env.DefaultFilesBaseURL),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize storage")
		}
		objectStore = b2
	} else {
		log.Warn().Msg("B2_BUCKET not set, file uploads are disabled")
	}

	schoolClient := schoolapi.NewClient(
		env.GetEnv(env.EnvSchoolAPIBaseURL, env.DefaultSchoolAPIBaseURL),
		env.GetEnv(env.EnvSchoolCode, env.DefaultSchoolCode),
		env.GetDuration(env.EnvSchoolAPITimeout, 10*time.Second),
	)

	// Repositories and services
	authRepo := auth.NewRepository(db)
	sessionStore := auth.NewSessionStore(
		db,
		env.GetDuration(env.EnvSessionDuration, auth.DefaultSessionDuration),
		env.GetBool(env.EnvSecureCookies, false),
	)
	fileRepo := files.NewRepository(db)
	noticeRepo := notices.NewRepository(db)
	noticeService := notices.NewService(noticeRepo, fileRepo)
	timetableRepo := timetable.NewRepository(db)
	timetableService := timetable.NewService(
		timetableRepo,
		schoolClient,
		env.GetInt(env.EnvTimetableGrade, env.DefaultTimetableGrade),
		env.GetInt(env.EnvTimetableClass, env.DefaultTimetableClass),
	)
	mealRepo := meals.NewRepository(db)
	mealService := meals.NewService(mealRepo, schoolClient)

	// Background refresh
	jobs := []scheduler.Job{{
		Name:      "cleanup expired sessions",
		Interval:  time.Hour,
		Immediate: true,
		Run:       sessionStore.CleanupExpiredSessions,
	}}
	if env.GetBool(env.EnvRefreshEnabled, true) {
		jobs = append(jobs, refreshJobs(env.GetDuration(env.EnvRefreshInterval, time.Hour), timetableService, mealService)...)
	}
	sched := scheduler.New(jobs...)
	sched.Start(ctx)

	// Handlers
	authHandler := auth.NewHandler(authRepo, sessionStore)
	authMiddleware := auth.NewMiddleware(sessionStore)
	fileHandler := files.NewHandler(fileRepo, objectStore)
	noticeHandler := notices.NewHandler(noticeRepo, noticeService)
	timetableHandler := timetable.NewHandler(timetableRepo, timetableService)
	mealHandler := meals.NewHandler(mealRepo, mealService)

	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestID(), logger.Requests())

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, db)
	auth.RegisterRoutes(global, authHandler)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		notices.RegisterRoutes(v0Group, noticeHandler)
		files.RegisterRoutes(v0Group, fileHandler)
		timetable.RegisterRoutes(v0Group, timetableHandler)
		meals.RegisterRoutes(v0Group, mealHandler)
	}

	admin := v0Group.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin())
	{
		auth.RegisterAdminRoutes(admin, authHandler)
		notices.RegisterAdminRoutes(admin, noticeHandler)
		files.RegisterAdminRoutes(admin, fileHandler)
		timetable.RegisterAdminRoutes(admin, timetableHandler)
		meals.RegisterAdminRoutes(admin, mealHandler)
	}

	srv := &http.Server{
		Addr:              ":" + env.GetEnv(env.EnvPort, env.DefaultPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown handling
	stop := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
		sched.Stop()
		close(stop)
	}()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", srv.Addr).Msg("failed to listen")
	}
	log.Info().Str("addr", srv.Addr).Msg("listening")
	if err := serve(srv, ln, stop, ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}
