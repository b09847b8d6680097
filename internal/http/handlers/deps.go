package handlers

import (
	"context"

	"porcelain/internal/config"
	"porcelain/internal/drafting"
	applog "porcelain/internal/log"
	"porcelain/internal/ratelimit"
	"porcelain/internal/repos"
	"porcelain/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Sessions *services.SessionStore
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Drafts   *services.DraftService
	Auth     *services.AuthService
	Gateway  *drafting.Gateway

	ShopHandler    *ShopHandler
	ProductHandler *ProductHandler
	SearchHandler  *SearchHandler
	CartHandler    *CartHandler
	AdminHandler   *AdminHandler
	AuthHandler    *AuthHandler
	APIHandler     *APIHandler
}

// NewDeps wires repositories, services and handlers. gen may be nil, in
// which case drafting is reported as unavailable. Drafting requests run
// under ctx.
func NewDeps(ctx context.Context, db *sqlx.DB, cfg config.Config, gen drafting.Generator) *Deps {
	prodRepo := repos.NewProductRepo(db)
	userRepo := repos.NewUserRepo(db)

	limiter := ratelimit.New(cfg.DraftRPS, cfg.DraftBurst)
	gw := drafting.New(gen, limiter, cfg.DraftTimeout)

	sessions := services.NewSessionStore(cfg.SessionTTL)
	sessions.OnEvict(func(ids []string) {
		for _, id := range ids {
			limiter.Forget(id)
		}
		if err := userRepo.ForgetSessions(ids); err != nil {
			applog.Error(nil, "session.evict.fail", err, map[string]any{"count": len(ids)})
			return
		}
		applog.Info(nil, "session.evict", map[string]any{"count": len(ids)})
	})

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(sessions, catalogSvc)
	draftSvc := services.NewDraftService(ctx, sessions, catalogSvc, gw)
	authSvc := &services.AuthService{Users: userRepo, Required: cfg.AdminAuth()}

	return &Deps{
		Sessions: sessions,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Drafts:   draftSvc,
		Auth:     authSvc,
		Gateway:  gw,

		ShopHandler:    &ShopHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		SearchHandler:  &SearchHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		AdminHandler:   &AdminHandler{Drafts: draftSvc, Gateway: gw},
		AuthHandler:    &AuthHandler{Auth: authSvc},
		APIHandler:     &APIHandler{Catalog: catalogSvc, Cart: cartSvc},
	}
}
