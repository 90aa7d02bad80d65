//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/diveplanner/internal/bootstrap"
	"github.com/yanqian/diveplanner/internal/domain/budget"
	"github.com/yanqian/diveplanner/internal/domain/chat"
	"github.com/yanqian/diveplanner/internal/domain/destination"
	"github.com/yanqian/diveplanner/internal/domain/inspiration"
	"github.com/yanqian/diveplanner/internal/domain/llm"
	"github.com/yanqian/diveplanner/internal/domain/safety"
	"github.com/yanqian/diveplanner/internal/domain/subscription"
	"github.com/yanqian/diveplanner/internal/infra/config"
	"github.com/yanqian/diveplanner/internal/infra/export"
	httpiface "github.com/yanqian/diveplanner/internal/interface/http"
	"github.com/yanqian/diveplanner/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatConfig,
		provideSafetyConfig,
		provideDestinationConfig,
		provideBudgetConfig,
		provideInspirationConfig,
		provideGenerator,
		provideTokenCounter,
		provideValkeyClient,
		provideSessionStore,
		provideDestinationCache,
		provideBlobStore,
		provideSubscriberRepository,
		export.NewRenderer,
		chat.NewService,
		safety.NewService,
		destination.NewService,
		budget.NewService,
		inspiration.NewService,
		subscription.NewService,
		wire.Bind(new(llm.TextGenerator), new(llm.Generator)),
		wire.Bind(new(llm.ImageGenerator), new(llm.Generator)),
		wire.Bind(new(budget.Exporter), new(*export.Renderer)),
		wire.Bind(new(httpiface.DiveSheetRenderer), new(*export.Renderer)),
		wire.Struct(new(httpiface.Services), "*"),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
