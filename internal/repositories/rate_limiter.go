package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes the outcome of one login attempt check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, email string) (RateLimitResult, error)
	ResetLoginAttempts(ctx context.Context, email string) error
}

type redisRateLimiter struct {
	client redis.Cmdable
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {
	slog.Info("Connecting to Redis",
		slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig) RateLimitRepository {
	return &redisRateLimiter{client: client, cfg: cfg, now: time.Now}
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

// CheckLoginRateLimit records an attempt in a sliding window kept as a sorted
// set of attempt timestamps and reports whether the attempt may proceed.
func (r *redisRateLimiter) CheckLoginRateLimit(ctx context.Context, email string) (RateLimitResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := loginAttemptsKey(email)
	now := r.now()
	windowStart := now.Add(-r.cfg.WindowSize)

	pipe := r.client.TxPipeline()

	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.NewString()})
	count := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return RateLimitResult{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {
		retryAfter := r.cfg.WindowSize

		if scores := oldest.Val(); len(scores) > 0 {
			oldestAttempt := time.Unix(0, int64(scores[0].Score))
			retryAfter = max(oldestAttempt.Add(r.cfg.WindowSize).Sub(now), 0)
		}

		logger.Warn("Rate limit exceeded for login", slog.Int64("attempts", attempts))

		return RateLimitResult{Allowed: false, RetryAfter: retryAfter}, nil
	}

	remaining := int(r.cfg.MaxAttempts - attempts)

	logger.Debug("Rate limit check passed", slog.Int64("attempts", attempts), slog.Int("remaining", remaining))

	return RateLimitResult{Allowed: true, Remaining: remaining}, nil
}

// ResetLoginAttempts clears the window after a successful login.
func (r *redisRateLimiter) ResetLoginAttempts(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, loginAttemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}

	return nil
}
