package handler

import (
	analyticshandler "fintrack/internal/transport/httpserver/handler/analytics"
	authhandler "fintrack/internal/transport/httpserver/handler/auth"
	commonhandler "fintrack/internal/transport/httpserver/handler/common"
	transactionshandler "fintrack/internal/transport/httpserver/handler/transactions"
)

type Handlers struct {
	Common       *commonhandler.Handlers
	Auth         *authhandler.Handlers
	Transactions *transactionshandler.Handlers
	Analytics    *analyticshandler.Handlers
}

func New(common *commonhandler.Handlers, auth *authhandler.Handlers, transactions *transactionshandler.Handlers, analytics *analyticshandler.Handlers) *Handlers {
	return &Handlers{
		Common:       common,
		Auth:         auth,
		Transactions: transactions,
		Analytics:    analytics,
	}
}
