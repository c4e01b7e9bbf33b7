package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/clock"
	"trivia-quiz-service/internal/domain"
	pgstore "trivia-quiz-service/internal/infra/postgres"
	pgmigrations "trivia-quiz-service/internal/infra/postgres/migrations"
	infraredis "trivia-quiz-service/internal/infra/redis"
)

func TestSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL := startPostgres(t, ctx)
	redisURL := startRedis(t, ctx)

	seedPack(t, ctx, pgURL, samplePack())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	packs := infraredis.NewPackRepository(redisClient, pgstore.NewPackLoader(pool), 5*time.Minute, nil)
	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute, nil)
	scores := pgstore.NewHighScoreBook(pool)
	c := clock.NewManual(time.Unix(0, 0))
	service := app.NewQuizService(sessions, packs, scores, app.ServiceOptions{Clock: c})

	if err := scores.Set(ctx, "alice", 5); err != nil {
		t.Fatalf("seed high score: %v", err)
	}

	session, err := service.Start(ctx, "general", "alice", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if n, _ := redisClient.Exists(ctx, "quiz:pack:general", "quiz:session:"+session.ID()).Result(); n != 2 {
		t.Fatalf("expected pack cache and liveness keys, got %d", n)
	}
	if got := session.Snapshot().StartupHighScore; got != 5 {
		t.Fatalf("expected startup high score 5, got %d", got)
	}

	questions := samplePack().Questions
	for session.Snapshot().Phase != app.PhaseFinished {
		snap := session.Snapshot()
		for _, i := range questions[snap.CurrentIndex].CorrectIndices() {
			if err := session.Select(i); err != nil {
				t.Fatalf("select: %v", err)
			}
		}
		session.Submit()
		c.Advance(app.DefaultResolutionDelay)
	}

	best, err := scores.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get high score: %v", err)
	}
	if best != 20 {
		t.Fatalf("expected persisted high score 20, got %d", best)
	}

	service.End(ctx, session.ID())
	if n, _ := redisClient.Exists(ctx, "quiz:session:"+session.ID()).Result(); n != 0 {
		t.Fatalf("expected liveness key removed")
	}

	if _, err := service.Start(ctx, "missing", "alice", nil); !errors.Is(err, domain.ErrPackNotFound) {
		t.Fatalf("expected pack not found, got %v", err)
	}
}

// startContainer runs image and returns the mapped host:port of exposed.
func startContainer(t *testing.T, ctx context.Context, image, exposed string, env map[string]string, timeout time.Duration) string {
	t.Helper()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        image,
			Env:          env,
			ExposedPorts: []string{exposed},
			WaitingFor:   wait.ForListeningPort(nat.Port(exposed)).WithStartupTimeout(timeout),
		},
		Started: true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start %s: %v", image, err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("%s host: %v", image, err)
	}
	port, err := container.MappedPort(ctx, nat.Port(exposed))
	if err != nil {
		t.Fatalf("%s port: %v", image, err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func startPostgres(t *testing.T, ctx context.Context) string {
	addr := startContainer(t, ctx, "postgres:15-alpine", "5432/tcp", map[string]string{
		"POSTGRES_USER":     "trivia",
		"POSTGRES_PASSWORD": "trivia",
		"POSTGRES_DB":       "trivia",
	}, 60*time.Second)
	return "postgres://trivia:trivia@" + addr + "/trivia?sslmode=disable"
}

func startRedis(t *testing.T, ctx context.Context) string {
	return "redis://" + startContainer(t, ctx, "redis:7-alpine", "6379/tcp", nil, 30*time.Second)
}

func seedPack(t *testing.T, ctx context.Context, dsn string, pack domain.Pack) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := pgstore.NewPackImporter(db).Import(ctx, pack); err != nil {
		t.Fatalf("import pack: %v", err)
	}
}

func samplePack() domain.Pack {
	return domain.Pack{
		ID:    "general",
		Title: "General knowledge",
		Questions: []domain.Question{
			{
				Prompt: "What is 2 + 2?",
				Answers: []domain.Answer{
					{Text: "3"},
					{Text: "4", IsCorrect: true},
					{Text: "5"},
				},
				SelectionMode: domain.SelectionSingle,
				ScoreValue:    10,
			},
			{
				Prompt: "Which are even?",
				Answers: []domain.Answer{
					{Text: "2", IsCorrect: true},
					{Text: "3"},
					{Text: "4", IsCorrect: true},
				},
				ScoreValue: 10,
			},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
