package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/ncm-player/internal/constants"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// DatabasePath is the SQLite file holding the song cache and the stored identity.
	DatabasePath string `mapstructure:"database_path"`
	// APIBaseURL is the base URL of the music service API.
	APIBaseURL string `mapstructure:"api_base_url"`
	// RequestTimeout bounds a single HTTP request (e.g., "30s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// MaxLogLength limits the size of debug HTTP dumps (e.g., "64KB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// SongCacheTTL is how long a fetched song detail stays valid (e.g., "720h").
	SongCacheTTL string `mapstructure:"song_cache_ttl"`
	// SongDetailBatchSize is the number of ids per song detail request, at most 1000.
	SongDetailBatchSize int64 `mapstructure:"song_detail_batch_size"`
	// EngineReplyTimeout is how long a command waits for the audio engine reply.
	EngineReplyTimeout string `mapstructure:"engine_reply_timeout"`
	// PositionTick is the interval between playback position events.
	PositionTick string `mapstructure:"position_tick"`
	// AudioLevel is the requested stream quality (standard, higher, exhigh, lossless, hires).
	AudioLevel string `mapstructure:"audio_level"`
	// ConfigPath is the file the configuration was read from (set automatically).
	ConfigPath string `mapstructure:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-"`
	// ParsedDatabasePath is DatabasePath with the home directory expanded.
	ParsedDatabasePath string `mapstructure:"-"`
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration `mapstructure:"-"`
	// ParsedMaxLogLength is the parsed dump limit in bytes.
	ParsedMaxLogLength uint64 `mapstructure:"-"`
	// ParsedSongCacheTTL is the parsed song cache TTL.
	ParsedSongCacheTTL time.Duration `mapstructure:"-"`
	// ParsedEngineReplyTimeout is the parsed engine reply timeout.
	ParsedEngineReplyTimeout time.Duration `mapstructure:"-"`
	// ParsedPositionTick is the parsed position tick interval.
	ParsedPositionTick time.Duration `mapstructure:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".ncm-player.yaml"

	// DefaultAPIBaseURL is the base URL of the music service.
	DefaultAPIBaseURL = "https://music.163.com"

	// DefaultDatabasePath is where the cache database lives unless configured otherwise.
	DefaultDatabasePath = "~/.ncm-player/ncm-player.db"

	// DefaultSongCacheTTL is the forward TTL of cached song details.
	DefaultSongCacheTTL = 30 * 24 * time.Hour

	// MaxSongDetailBatchSize is the largest id list the song detail endpoint accepts.
	MaxSongDetailBatchSize = 1000

	// DefaultEngineReplyTimeout is how long an engine command waits for its reply.
	DefaultEngineReplyTimeout = 30 * time.Second

	// DefaultPositionTick is the default interval of position events.
	DefaultPositionTick = time.Second

	// DefaultAudioLevel is the default stream quality.
	DefaultAudioLevel = "exhigh"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrEmptyDatabasePath indicates that no database path is configured.
	ErrEmptyDatabasePath = errors.New("database_path cannot be empty")
	// ErrInvalidAPIBaseURL indicates that the API base URL is not an absolute http(s) URL.
	ErrInvalidAPIBaseURL = errors.New("api_base_url must be an absolute http(s) URL")
	// ErrInvalidRequestTimeout indicates that the request timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidSongCacheTTL indicates that the cache TTL is not positive.
	ErrInvalidSongCacheTTL = errors.New("song_cache_ttl must be positive")
	// ErrInvalidBatchSize indicates that the batch size is out of range.
	ErrInvalidBatchSize = errors.New("invalid song_detail_batch_size")
	// ErrInvalidEngineReplyTimeout indicates that the engine reply timeout is not positive.
	ErrInvalidEngineReplyTimeout = errors.New("engine_reply_timeout must be positive")
	// ErrInvalidPositionTick indicates that the position tick is not positive.
	ErrInvalidPositionTick = errors.New("position_tick must be positive")
	// ErrUnknownAudioLevel indicates that the audio level is not recognized.
	ErrUnknownAudioLevel = errors.New("unknown audio level")
	// ErrUnknownConfigKey indicates an attempt to set a key the configuration does not have.
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// AudioLevels lists the stream qualities accepted by the playback URL endpoint.
//
//nolint:gochecknoglobals // Read-only lookup table.
var AudioLevels = []string{"standard", "higher", "exhigh", "lossless", "hires"}

// Keys lists every configuration key in file order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Keys = []string{
	"log_level",
	"database_path",
	"api_base_url",
	"request_timeout",
	"max_log_length",
	"song_cache_ttl",
	"song_detail_batch_size",
	"engine_reply_timeout",
	"position_tick",
	"audio_level",
}

// newViper returns a viper instance preloaded with defaults.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("max_log_length", "64KB")
	v.SetDefault("song_cache_ttl", DefaultSongCacheTTL.String())
	v.SetDefault("song_detail_batch_size", MaxSongDetailBatchSize)
	v.SetDefault("engine_reply_timeout", DefaultEngineReplyTimeout.String())
	v.SetDefault("position_tick", DefaultPositionTick.String())
	v.SetDefault("audio_level", DefaultAudioLevel)

	return v
}

// LoadConfig loads configuration settings from a YAML file.
// A missing file is not an error: defaults are used instead.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	v := newViper()
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configFilename

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return ErrEmptyDatabasePath
	}

	cfg.ParsedDatabasePath, err = utils.ExpandPath(strings.TrimSpace(cfg.DatabasePath))
	if err != nil {
		return fmt.Errorf("failed to expand database path: %w", err)
	}

	baseURL, err := url.Parse(strings.TrimSpace(cfg.APIBaseURL))
	if err != nil || (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidAPIBaseURL, cfg.APIBaseURL)
	}

	cfg.APIBaseURL = strings.TrimRight(baseURL.String(), "/")

	cfg.ParsedRequestTimeout, err = parsePositiveDuration(cfg.RequestTimeout, ErrInvalidRequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(strings.TrimSpace(cfg.MaxLogLength))
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	cfg.ParsedSongCacheTTL, err = parsePositiveDuration(cfg.SongCacheTTL, ErrInvalidSongCacheTTL)
	if err != nil {
		return fmt.Errorf("failed to parse song cache ttl: %w", err)
	}

	if cfg.SongDetailBatchSize <= 0 || cfg.SongDetailBatchSize > MaxSongDetailBatchSize {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidBatchSize, MaxSongDetailBatchSize)
	}

	cfg.ParsedEngineReplyTimeout, err = parsePositiveDuration(cfg.EngineReplyTimeout, ErrInvalidEngineReplyTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse engine reply timeout: %w", err)
	}

	cfg.ParsedPositionTick, err = parsePositiveDuration(cfg.PositionTick, ErrInvalidPositionTick)
	if err != nil {
		return fmt.Errorf("failed to parse position tick: %w", err)
	}

	cfg.AudioLevel = strings.ToLower(strings.TrimSpace(cfg.AudioLevel))
	if !slices.Contains(AudioLevels, cfg.AudioLevel) {
		return fmt.Errorf("%w: '%s'", ErrUnknownAudioLevel, cfg.AudioLevel)
	}

	return nil
}

func parsePositiveDuration(value string, errNotPositive error) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}

	if d <= 0 {
		return 0, errNotPositive
	}

	return d, nil
}

// SetValue writes a single key into the configuration file while preserving
// the original format and order. The file is created when it does not exist.
func SetValue(configFile, key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w: '%s'", ErrUnknownConfigKey, key)
	}

	if configFile == "" {
		configFile = DefaultConfigFilename
	}

	originalContent, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	setValueInNode(&node, key, value)

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setValueInNode updates key in the YAML node tree, appending it when absent.
func setValueInNode(node *yaml.Node, key, value string) {
	// An empty document has no content yet.
	if node.Kind == 0 {
		node.Kind = yaml.DocumentNode
	}

	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value != key {
			continue
		}

		valueNode := mapNode.Content[i+1]
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = ""
		valueNode.Value = value

		return
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}
