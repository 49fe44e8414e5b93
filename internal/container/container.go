// Package container shares constructed infrastructure singletons across
// packages so the router can auto-wire modules at startup.
package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/config"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
	"github.com/RangiraDave/Test-copilot/pkg/llm"
	"github.com/RangiraDave/Test-copilot/pkg/queue"
	"github.com/RangiraDave/Test-copilot/pkg/session"
	"github.com/RangiraDave/Test-copilot/pkg/token"
)

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	sessions    *session.Store
	jwtManager  *helpers.JWTManager
	tokenIssuer *token.Issuer
	mailPub     *queue.Publisher
	esClient    *elasticsearch.Client
	llmClient   *llm.Client
)

func SetConfig(c *config.Config)        { cfg = c }
func GetConfig() *config.Config         { return cfg }
func SetLogger(l *logrus.Logger)        { logger = l }
func GetLogger() *logrus.Logger         { return logger }
func SetPGPool(p *pgxpool.Pool)         { pgPool = p }
func GetPGPool() *pgxpool.Pool          { return pgPool }
func SetRedis(r *redis.Client)          { redisClient = r }
func GetRedis() *redis.Client           { return redisClient }
func SetSessions(s *session.Store)      { sessions = s }
func GetSessions() *session.Store       { return sessions }
func SetJWT(m *helpers.JWTManager)      { jwtManager = m }
func GetJWT() *helpers.JWTManager       { return jwtManager }
func SetTokenIssuer(i *token.Issuer)    { tokenIssuer = i }
func GetTokenIssuer() *token.Issuer     { return tokenIssuer }
func SetMailPub(p *queue.Publisher)     { mailPub = p }
func GetMailPub() *queue.Publisher      { return mailPub }
func SetES(c *elasticsearch.Client)     { esClient = c }
func GetES() *elasticsearch.Client      { return esClient }
func SetLLM(c *llm.Client)              { llmClient = c }
func GetLLM() *llm.Client               { return llmClient }
