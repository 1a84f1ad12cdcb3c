package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/blitzforge/linked-roles/config"
	"github.com/blitzforge/linked-roles/internal/adapters/discord"
	redisadapter "github.com/blitzforge/linked-roles/internal/adapters/redis"
	"github.com/blitzforge/linked-roles/internal/data"
	"github.com/blitzforge/linked-roles/internal/service"
	"github.com/blitzforge/linked-roles/internal/service/pushcache"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Sync        *service.SyncService
	Memberships *service.MembershipService
	Discord     *discord.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires adapters and services from shared infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config

	client, err := discord.NewClient(discord.ClientConfig{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURI:  cfg.Discord.RedirectURI,
		BotToken:     cfg.Discord.BotToken,
		AuthorizeURL: cfg.Discord.AuthorizeURL,
		APIBaseURL:   cfg.Discord.APIBaseURL,
		PlatformName: cfg.Discord.PlatformName,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create discord client: %w", err)
	}

	tokens := redisadapter.NewTokenStore(deps.RedisClient)
	memberships := data.NewMembershipRepo(deps.DB)
	dedupe := pushcache.New(pushcache.Config{
		Capacity: cfg.Sync.PushCacheSize,
		Window:   cfg.Sync.DebounceWindow,
	})

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Flow:       client,
			Identities: client,
			Tokens:     tokens,
		}),
		Sync: service.NewSyncService(service.SyncServiceOptions{
			Tokens:       tokens,
			Memberships:  memberships,
			Flow:         client,
			Connections:  client,
			Cache:        dedupe,
			PlatformName: cfg.Discord.PlatformName,
			Logger:       deps.Logger,
		}),
		Memberships: service.NewMembershipService(memberships),
		Discord:     client,
	}, nil
}
