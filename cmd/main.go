package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"foryou-service/configs"
	"foryou-service/internal/foryou"
	"foryou-service/internal/kafka"
	"foryou-service/internal/migrate"
	"foryou-service/internal/post"
	"foryou-service/internal/ratelimit"
	"foryou-service/internal/shared/httpx"
	"foryou-service/internal/shared/redisx"
	"foryou-service/internal/user"
	"foryou-service/pkg/db"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("foryou-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()

	gdb := db.Open(cfg.DSN())
	if err := migrate.AutoMigrateAll(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := redisx.Open(cfg.RedisAddr())
	defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)

	posts := post.NewRepository(gdb)
	users := user.NewRepository(gdb)
	profiles := foryou.NewProfileCache(rdb, cfg.ProfileCacheTTL)

	svc := foryou.NewService(posts, users,
		foryou.WithProfileCache(profiles),
		foryou.WithHistoryLimit(cfg.InterestHistoryLimit),
		foryou.WithScanLimit(cfg.CandidateScanLimit),
	)
	h := foryou.NewHandler(svc)

	// Feedback events invalidate the cached interest profile of the user who
	// liked or commented.
	go func() {
		err := kafka.StartConsumer(ctx, cfg.KafkaBrokers, cfg.FeedbackTopic, cfg.KafkaGroupID,
			func(ctx context.Context, ev kafka.FeedbackEvent) error {
				return profiles.Invalidate(ctx, ev.UserID)
			})
		if err != nil && ctx.Err() == nil {
			log.Printf("kafka consumer stopped: %v", err)
		}
	}()

	limiter := ratelimit.New(rdb)
	feedLimit := func(next http.Handler) http.Handler {
		return limiter.LimitHTTP(120, 60*time.Second, func(r *http.Request) (string, error) {
			return httpx.UserFromCtx(r)
		}, next)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			httpx.WriteJSON(w, map[string]string{"status": "degraded"}, http.StatusServiceUnavailable)
			return
		}
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	protect := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(handler))
	}
	protect("GET /posts/foryou", feedLimit(httpx.Wrap(h.GetForYouFeed)))
	protect("GET /posts/feed", httpx.Wrap(h.GetHomeFeed))

	protect("GET /whoami", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserFromCtx(r)
		if err != nil {
			httpx.WriteJSON(w, map[string]any{"error": err.Error()}, http.StatusUnauthorized)
			return
		}
		httpx.WriteJSON(w, map[string]any{"user_id": uid}, http.StatusOK)
	}))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt)
	go func() {
		<-exit
		log.Println("shutting down foryou-service...")
		cancel()
		c, cancelTo := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelTo()
		_ = srv.Shutdown(c)
	}()

	log.Printf("foryou-service listening on %s", cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
}
