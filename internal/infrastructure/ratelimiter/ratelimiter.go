package ratelimiter

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	bucketKeyPrefix   = "rl:bucket:"
	lastFillKeyPrefix = "rl:fill:"
	defaultSourceKey  = "X-RateLimit-Key"

	// tokens are stored scaled so partial refills survive between calls
	tokenScale = 1000
)

type Limiter interface {
	Allow(sourceKey string) bool
	GetSourceKey(r *http.Request) string
	Remaining(sourceKey string) int
	GetMaxBurst() int
}

// RateLimiter is a token bucket per source key whose state lives in a
// GetterSetter, so the bucket can be shared through any cache backend.
type RateLimiter struct {
	ratePerSecond   int
	maxBurst        int
	cache           GetterSetter
	cacheTTL        time.Duration
	sourceHeaderKey string
	now             func() time.Time

	locks sync.Map // map[string]*sync.Mutex
}

type bucketState struct {
	scaledTokens int
	lastFill     int64 // unix milliseconds
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	Cache            GetterSetter
	CacheTTL         time.Duration
	SourceHeaderKey  string
}

func New(options Options) *RateLimiter {
	if options.Cache == nil {
		options.Cache = NewInMemory()
	}

	if options.CacheTTL == 0 {
		options.CacheTTL = 10 * time.Second
	}

	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}

	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	return &RateLimiter{
		ratePerSecond:   options.MaxRatePerSecond,
		maxBurst:        options.MaxBurst,
		cache:           options.Cache,
		cacheTTL:        options.CacheTTL,
		sourceHeaderKey: options.SourceHeaderKey,
		now:             time.Now,
	}
}

func (rl *RateLimiter) lockFor(sourceKey string) *sync.Mutex {
	lock, _ := rl.locks.LoadOrStore(sourceKey, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (rl *RateLimiter) load(sourceKey string, now int64) bucketState {
	tokens, tokensErr := rl.cache.Get(bucketKeyPrefix + sourceKey)
	lastFill, fillErr := rl.cache.Get(lastFillKeyPrefix + sourceKey)

	// A miss starts a full bucket. Any other cache error fails open the same way.
	if tokensErr != nil || fillErr != nil {
		return bucketState{scaledTokens: rl.maxBurst * tokenScale, lastFill: now}
	}

	return bucketState{scaledTokens: tokens, lastFill: int64(lastFill)}
}

func (rl *RateLimiter) store(sourceKey string, state bucketState) {
	_ = rl.cache.SetWithExpiration(bucketKeyPrefix+sourceKey, state.scaledTokens, rl.cacheTTL)
	_ = rl.cache.SetWithExpiration(lastFillKeyPrefix+sourceKey, int(state.lastFill), rl.cacheTTL)
}

func (rl *RateLimiter) refill(state bucketState, now int64) bucketState {
	elapsed := now - state.lastFill
	if elapsed <= 0 {
		return state
	}

	// rate tokens/s over elapsed ms, scaled by 1000, is rate*elapsed
	scaled := state.scaledTokens + int(elapsed)*rl.ratePerSecond
	if limit := rl.maxBurst * tokenScale; scaled > limit {
		scaled = limit
	}

	return bucketState{scaledTokens: scaled, lastFill: now}
}

func (rl *RateLimiter) Allow(sourceKey string) bool {
	lock := rl.lockFor(sourceKey)
	lock.Lock()
	defer lock.Unlock()

	now := rl.now().UnixMilli()
	state := rl.refill(rl.load(sourceKey, now), now)

	allowed := state.scaledTokens >= tokenScale
	if allowed {
		state.scaledTokens -= tokenScale
	}
	rl.store(sourceKey, state)

	return allowed
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	lock := rl.lockFor(sourceKey)
	lock.Lock()
	defer lock.Unlock()

	now := rl.now().UnixMilli()
	return rl.refill(rl.load(sourceKey, now), now).scaledTokens / tokenScale
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

// GetSourceKey identifies the caller by the configured header, taking the
// first hop of a forwarded list, and falls back to the remote host.
func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		first, _, _ := strings.Cut(key, ",")
		return strings.TrimSpace(first)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
