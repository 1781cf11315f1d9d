package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alumni-connect-api/internal/config"
	"github.com/alumni-connect-api/internal/infrastructure/cas"
	"github.com/alumni-connect-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/alumni-connect-api/internal/infrastructure/jwt"
	s3infra "github.com/alumni-connect-api/internal/infrastructure/s3"
	"github.com/alumni-connect-api/internal/infrastructure/smtp"
	"github.com/alumni-connect-api/internal/metrics"
	"github.com/alumni-connect-api/internal/pkg/hash"
	transporthttp "github.com/alumni-connect-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	if cfg.HashKey == "" {
		log.Fatal("HASH_KEY must be set; identifier digests depend on it")
	}
	hasher := hash.New(cfg.HashKey)

	casClient := cas.NewClient(cfg.CASServerURL, cfg.ServiceURL)

	// S3 store for community icons.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	mailer := smtp.NewMailer(cfg)

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	deps := &transporthttp.Deps{
		ProfileRepo:    dynamo.NewProfileRepo(dynamoClient, cfg.DynamoTables.Profiles),
		CommunityRepo:  dynamo.NewCommunityRepo(dynamoClient, cfg.DynamoTables.Communities),
		AdminRepo:      dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTables.CommunityAdmins),
		IdentifierRepo: dynamo.NewIdentifierRepo(dynamoClient, cfg.DynamoTables.Identifiers),
		S3Store:        s3Store,
		Mailer:         mailer,
		JWTProvider:    jwtProvider,
		CASClient:      casClient,
		Hasher:         hasher,
		Collector:      collector,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
