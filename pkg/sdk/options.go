package faqdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	docsJSON      []byte
	file          string
	redisAddrs    []string
	redisPassword string
	redisKey      string
	perRequest    bool

	matchMode   MatchMode
	titleWeight int
	bodyWeight  int
	topK        int
	keepZero    bool

	style         AnswerStyle
	snippetLength *int
	modelLabel    string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDocumentsJSON serves documents parsed from a JSON array
// of {id, title, content, tags}.
func WithDocumentsJSON(data []byte) Option {
	return optionFunc(func(c *clientConfig) {
		c.docsJSON = data
	})
}

// WithFile reads documents from a JSON file.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.file = path
	})
}

// WithRedis reads documents from a JSON array stored at a Redis key.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithRedisKey overrides the Redis key holding the documents.
// Default: "faqdex:documents".
func WithRedisKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisKey = key
	})
}

// WithPerRequestReload re-reads file or Redis documents on every question
// instead of loading them once.
func WithPerRequestReload() Option {
	return optionFunc(func(c *clientConfig) {
		c.perRequest = true
	})
}

// WithMatchMode selects token matching. Default: MatchContainment.
func WithMatchMode(m MatchMode) Option {
	return optionFunc(func(c *clientConfig) {
		c.matchMode = m
	})
}

// WithWeights sets per-token title and body match weights.
// title must exceed body and body must be at least 1. Default: 2 and 1.
func WithWeights(title, body int) Option {
	return optionFunc(func(c *clientConfig) {
		c.titleWeight = title
		c.bodyWeight = body
	})
}

// WithTopK sets the default number of cited candidates. Default: 3.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithZeroScoreCandidates keeps unmatched documents in the ranking.
func WithZeroScoreCandidates() Option {
	return optionFunc(func(c *clientConfig) {
		c.keepZero = true
	})
}

// WithAnswerStyle selects full-content or snippet answers. Default: StyleFull.
func WithAnswerStyle(s AnswerStyle) Option {
	return optionFunc(func(c *clientConfig) {
		c.style = s
	})
}

// WithSnippetLength sets the citation snippet length in runes; 0 keeps the
// full content. Default: 120.
func WithSnippetLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.snippetLength = &n
	})
}

// WithModelLabel sets the strategy label reported in answers.
// Default: "local-search".
func WithModelLabel(label string) Option {
	return optionFunc(func(c *clientConfig) {
		c.modelLabel = label
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
