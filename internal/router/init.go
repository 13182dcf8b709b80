package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oksasatya/student-portal/internal/application"
	"github.com/oksasatya/student-portal/internal/container"
	"github.com/oksasatya/student-portal/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/student-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/student-portal/internal/infrastructure/search"
	handlers "github.com/oksasatya/student-portal/internal/interface/http"
	"github.com/oksasatya/student-portal/internal/router/modules"
	"github.com/oksasatya/student-portal/pkg/mailer/templates"
)

// Services are the application services shared by the route modules.
type Services struct {
	Directory    *application.StudentQueryBuilder
	Resolver     *application.StreamResolver
	Registration *application.RegistrationService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	students := pginfra.NewStudentRepository(pool)
	streams := pginfra.NewStreamRepository(pool)
	aliases := cache.NewAliasCache(pginfra.NewPathAliasRepository(pool), container.GetRedis(), cfg.AliasCacheTTL, logger)

	registration := application.NewRegistrationService(students, streams, container.GetNotifier(), application.RegistrationConfig{
		AdminEmail: cfg.SiteMail,
		Langcode:   cfg.DefaultLangcode,
		Vocabulary: cfg.StreamVocabulary,
		Site:       templates.Site{Name: cfg.SiteName, URL: cfg.SiteURL},
	}, logger)
	if es := container.GetES(); es != nil {
		registration.Indexer = search.NewStudentIndexer(es, cfg.ESStudentsIndex)
	}

	return Services{
		Directory:    application.NewStudentQueryBuilder(students, streams, cfg.StreamVocabulary, logger),
		Resolver:     application.NewStreamResolver(students, streams, aliases, logger),
		Registration: registration,
	}
}

// InitModules wires every module into the registry. Call once at startup
// after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	svc := buildServices()

	var db modules.Pinger
	if pool := container.GetPGPool(); pool != nil {
		db = pool
	}
	r.Add(modules.NewHealthModule(db))

	r.Add(modules.NewStudentModule(handlers.NewStudentHandler(svc.Directory, logger), rdb))
	r.Add(modules.NewStreamModule(handlers.NewStreamHandler(svc.Resolver, cfg.StreamFallbackPath, logger), container.GetJWT(), rdb))
	r.Add(modules.NewRegistrationModule(handlers.NewRegistrationHandler(svc.Registration, logger), rdb, cfg.RegisterRateLimit))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb, prometheus.DefaultGatherer))
	}
}
