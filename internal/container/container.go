package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/config"
	"github.com/oksasatya/student-portal/internal/application"
	"github.com/oksasatya/student-portal/pkg/helpers"
)

// Process-wide components built in main and read by the router when it
// wires modules.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	notifier    application.NotificationSender
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

// GetRedis returns a nil interface, not a typed nil, when Redis is not
// configured so callers can test it against nil.
func GetRedis() redis.Cmdable {
	if redisClient == nil {
		return nil
	}
	return redisClient
}

func SetNotifier(n application.NotificationSender) { notifier = n }
func GetNotifier() application.NotificationSender  { return notifier }
func SetES(c *elasticsearch.Client)                { esClient = c }
func GetES() *elasticsearch.Client                 { return esClient }
