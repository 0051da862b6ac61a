package app

import (
	"net/http"

	"fintrack/internal/config"
	"fintrack/internal/db"
	analyticsdomain "fintrack/internal/domain/analytics"
	categoriesdomain "fintrack/internal/domain/categories"
	transactionsdomain "fintrack/internal/domain/transactions"
	userdomain "fintrack/internal/domain/user"
	analyticsrepo "fintrack/internal/repository/postgres/analytics"
	categoriesrepo "fintrack/internal/repository/postgres/categories"
	transactionsrepo "fintrack/internal/repository/postgres/transactions"
	userrepo "fintrack/internal/repository/postgres/user"
	"fintrack/internal/transport/httpserver"
	"fintrack/internal/transport/httpserver/handler"
	analyticshandler "fintrack/internal/transport/httpserver/handler/analytics"
	authhandler "fintrack/internal/transport/httpserver/handler/auth"
	commonhandler "fintrack/internal/transport/httpserver/handler/common"
	transactionshandler "fintrack/internal/transport/httpserver/handler/transactions"
	"fintrack/internal/transport/httpserver/middleware"
	"fintrack/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	categories := categoriesdomain.NewService(categoriesrepo.NewPostgres(dbConn))
	transactions := transactionsdomain.NewService(transactionsrepo.NewPostgres(dbConn))
	analytics := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn))

	tokens := middleware.NewTokenManager(cfg.JWT)
	auth := middleware.NewJWTAuth(tokens, users, log)

	handlers := handler.New(
		commonhandler.New(log),
		authhandler.New(users, tokens, log),
		transactionshandler.New(transactions, categories, log),
		analyticshandler.New(analytics, cfg.Analytics, log),
	)

	log.Info("app: initializing http server")
	router := httpserver.NewRouter(handlers, auth)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
