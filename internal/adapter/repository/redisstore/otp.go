package redisstore

import (
	"context"
	"errors"
	"time"

	"loansaarthi-backend/internal/domain/otp"

	"github.com/redis/go-redis/v9"
)

var _ otp.Store = (*OTPStore)(nil)

// OTPStore keeps one code per mobile under otp:mobile:<n>, expiring after
// ttl, with its verify counter under otp:attempts:<n>.
type OTPStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewOTPStore(rdb redis.Cmdable, ttl time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, ttl: ttl}
}

func otpKey(mobile string) string { return "otp:mobile:" + mobile }
func attemptsKey(mobile string) string { return "otp:attempts:" + mobile }
func verifiedKey(mobile string) string { return "otp:verified:" + mobile }

// Put overwrites any live code and restarts its TTL.
func (s *OTPStore) Put(ctx context.Context, mobile, code string) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, otpKey(mobile), code, s.ttl)
		p.Del(ctx, attemptsKey(mobile))
		return nil
	})
	return err
}

func (s *OTPStore) Get(ctx context.Context, mobile string) (string, error) {
	v, err := s.rdb.Get(ctx, otpKey(mobile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", otp.ErrNotFound
	}
	return v, err
}

func (s *OTPStore) Delete(ctx context.Context, mobile string) error {
	return s.rdb.Del(ctx, otpKey(mobile), attemptsKey(mobile)).Err()
}

// Attempt increments the counter; the first increment starts its TTL so a
// counter never outlives the code it guards.
func (s *OTPStore) Attempt(ctx context.Context, mobile string) (int64, error) {
	n, err := s.rdb.Incr(ctx, attemptsKey(mobile)).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, attemptsKey(mobile), s.ttl).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (s *OTPStore) MarkVerified(ctx context.Context, mobile string) error {
	return s.rdb.Set(ctx, verifiedKey(mobile), "1", otp.VerifiedWindow).Err()
}

func (s *OTPStore) ConsumeVerified(ctx context.Context, mobile string) (bool, error) {
	err := s.rdb.GetDel(ctx, verifiedKey(mobile)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
