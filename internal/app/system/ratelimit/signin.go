package ratelimit

import (
	"context"
	"strings"
	"time"
)

// SignInLimiter throttles credential checks by client IP and by account.
// The IP limit slows down sweeps across many accounts; the email limit
// slows down guessing against one account from many addresses.
type SignInLimiter struct {
	ip    Store
	email Store
}

// NewSignInLimiter combines two stores into a sign-in limiter.
func NewSignInLimiter(ip, email Store) *SignInLimiter {
	return &SignInLimiter{ip: ip, email: email}
}

// NewMemorySignInLimiter builds a process-local limiter.
// Defaults used by the server: 10 attempts per IP per minute, 5 per email per 5 minutes.
func NewMemorySignInLimiter(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *SignInLimiter {
	return NewSignInLimiter(New(ipLimit, ipWindow), New(emailLimit, emailWindow))
}

// Check records one attempt. It returns ("", nil) when the attempt may
// proceed, or a user-facing reason when it is throttled. The IP read from
// ctx (see WithClientIP) is skipped when absent.
func (l *SignInLimiter) Check(ctx context.Context, email string) (string, error) {
	if ip := ClientIPFrom(ctx); ip != "" {
		ok, err := l.ip.Allow(ctx, "ip:"+ip)
		if err != nil {
			return "", err
		}
		if !ok {
			return "Too many sign-in attempts. Please wait a minute before trying again.", nil
		}
	}

	if key := emailKey(email); key != "" {
		ok, err := l.email.Allow(ctx, "email:"+key)
		if err != nil {
			return "", err
		}
		if !ok {
			return "Too many sign-in attempts for this account. Please wait a few minutes.", nil
		}
	}
	return "", nil
}

// ResetEmail clears the account window after a successful sign-in.
func (l *SignInLimiter) ResetEmail(ctx context.Context, email string) error {
	if key := emailKey(email); key != "" {
		return l.email.Reset(ctx, "email:"+key)
	}
	return nil
}

// Stop releases background resources held by in-process stores.
func (l *SignInLimiter) Stop() {
	for _, s := range []Store{l.ip, l.email} {
		if m, ok := s.(*Limiter); ok {
			m.Stop()
		}
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
