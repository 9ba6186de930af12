// api/db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Rules carry policy text fragments, so their cached form is encrypted the
// same way policies were in older deployments.
func CacheRule(ctx context.Context, rule *model.Rule) error {
	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("failed to marshal rule: %w", err)
	}

	encryptedRule, err := encrypt(ruleJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt rule: %w", err)
	}

	key := fmt.Sprintf("rule:%s", rule.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedRule), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache rule: %w", err)
	}

	logger.Debug("Rule cached successfully", zap.String("ruleID", rule.ID))
	return nil
}

func GetCachedRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	key := fmt.Sprintf("rule:%s", ruleID)
	encryptedRuleStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Rule not found in cache", zap.String("ruleID", ruleID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get rule from cache: %w", err)
	}

	encryptedRule, err := base64.StdEncoding.DecodeString(encryptedRuleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rule: %w", err)
	}

	ruleJSON, err := decrypt(encryptedRule)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt rule: %w", err)
	}

	var rule model.Rule
	err = json.Unmarshal(ruleJSON, &rule)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule: %w", err)
	}

	logger.Debug("Rule retrieved from cache", zap.String("ruleID", ruleID))
	return &rule, nil
}

func DeleteCachedRule(ctx context.Context, ruleID string) error {
	key := fmt.Sprintf("rule:%s", ruleID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete rule from cache: %w", err)
	}
	logger.Debug("Rule deleted from cache", zap.String("ruleID", ruleID))
	return nil
}

func CacheEmployee(ctx context.Context, employee *model.Employee) error {
	employeeJSON, err := json.Marshal(employee)
	if err != nil {
		return fmt.Errorf("failed to marshal employee: %w", err)
	}

	key := fmt.Sprintf("employee:%s", employee.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, employeeJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache employee: %w", err)
	}

	logger.Debug("Employee cached successfully", zap.String("employeeID", employee.ID))
	return nil
}

func DeleteCachedEmployee(ctx context.Context, employeeID string) error {
	key := fmt.Sprintf("employee:%s", employeeID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete employee from cache: %w", err)
	}
	logger.Debug("Employee deleted from cache", zap.String("employeeID", employeeID))
	return nil
}

func GetCachedEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	key := fmt.Sprintf("employee:%s", employeeID)
	employeeJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Employee not found in cache", zap.String("employeeID", employeeID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get employee from cache: %w", err)
	}

	var employee model.Employee
	err = json.Unmarshal([]byte(employeeJSON), &employee)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee: %w", err)
	}

	logger.Debug("Employee retrieved from cache", zap.String("employeeID", employeeID))
	return &employee, nil
}

func CacheViolationSummary(ctx context.Context, summary *model.ViolationSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal violation summary: %w", err)
	}

	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, "violations:summary", summaryJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache violation summary: %w", err)
	}

	logger.Debug("Violation summary cached successfully")
	return nil
}

func GetCachedViolationSummary(ctx context.Context) (*model.ViolationSummary, error) {
	summaryJSON, err := RedisClient.Get(ctx, "violations:summary").Result()
	if err == redis.Nil {
		logger.Debug("Violation summary not found in cache")
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get violation summary from cache: %w", err)
	}

	var summary model.ViolationSummary
	err = json.Unmarshal([]byte(summaryJSON), &summary)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal violation summary: %w", err)
	}

	logger.Debug("Violation summary retrieved from cache")
	return &summary, nil
}

func DeleteCachedViolationSummary(ctx context.Context) error {
	err := RedisClient.Del(ctx, "violations:summary").Err()
	if err != nil {
		return fmt.Errorf("failed to delete violation summary from cache: %w", err)
	}
	logger.Debug("Violation summary deleted from cache")
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
