package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 5 * time.Second

	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
	HeaderRequestID  = "X-Request-ID"

	ScopeTokenAccess = "access"

	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
	MaxPageNumber     = 10000

	// Search
	SearchMinQueryLength = 3
	SearchResultLimit    = 20

	GameSystemSearchLimit = 10
	UserSearchLimit       = 10

	RedisKeySearchGames        = "search:games:"
	RedisKeySearchGameSystems  = "search:game_systems:"
	RedisKeyGamesVersion       = "version:games"
	RedisKeyGameSystemsVersion = "version:game_systems"
	DefaultSearchCacheTTL      = 60 * time.Second

	MaxHeroImageBytes = 5 << 20

	TaskNotificationDeliver = "notification:deliver"
	QueueDefault            = "default"
)
