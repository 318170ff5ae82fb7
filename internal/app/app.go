package app

import (
	"mindshift/internal/cache"
	"mindshift/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// App bundles the storage layer shared by the server and the tools
type App struct {
	ProfileRepo repository.ProfileRepo
	TraitRepo   repository.TraitRepo
	EventRepo   repository.EventRepo

	ProfileCache  cache.ProfileCache
	QuestionCache cache.QuestionCache
	ThemeCache    cache.ThemeCache
	TypeStats     cache.TypeStatsCache
	Blocklist     cache.BlocklistCache
}

// New wires repositories on db and caches on rdb
func New(db *mongo.Database, rdb *redis.Client) *App {
	return &App{
		ProfileRepo:   repository.NewProfileRepo(db),
		TraitRepo:     repository.NewTraitRepo(db),
		EventRepo:     repository.NewEventRepo(db),
		ProfileCache:  cache.NewProfileCache(rdb),
		QuestionCache: cache.NewQuestionCache(rdb),
		ThemeCache:    cache.NewThemeCache(rdb),
		TypeStats:     cache.NewTypeStatsCache(rdb),
		Blocklist:     cache.NewBlocklistCache(rdb),
	}
}
