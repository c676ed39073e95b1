//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/faq-assistant/internal/bootstrap"
	"github.com/yanqian/faq-assistant/internal/domain/faq"
	"github.com/yanqian/faq-assistant/internal/infra/config"
	"github.com/yanqian/faq-assistant/internal/infra/llm/chatgpt"
	httpiface "github.com/yanqian/faq-assistant/internal/interface/http"
	mcpiface "github.com/yanqian/faq-assistant/internal/interface/mcp"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideFAQConfig,
		provideChatGPTClient,
		provideFAQSource,
		provideCollection,
		provideFAQStore,
		faq.NewComposer,
		faq.NewService,
		wire.Bind(new(faq.ChatClient), new(*chatgpt.Client)),
		httpiface.NewHandler,
		mcpiface.NewServer,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
