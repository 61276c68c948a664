package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/chainlance-backend/internal/ai"
	"github.com/ignatzorin/chainlance-backend/internal/config"
	httpHandlers "github.com/ignatzorin/chainlance-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/chainlance-backend/internal/http/router"
	"github.com/ignatzorin/chainlance-backend/internal/logger"
	"github.com/ignatzorin/chainlance-backend/internal/models"
	"github.com/ignatzorin/chainlance-backend/internal/service"
	"github.com/ignatzorin/chainlance-backend/internal/storage"
	"github.com/ignatzorin/chainlance-backend/internal/store"
	"github.com/ignatzorin/chainlance-backend/internal/wallet"
	"github.com/ignatzorin/chainlance-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Хранилище снапшотов и пул проектов.
	snapshots, err := storage.NewSnapshotStorage(cfg.StoragePath)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище: %v", err)
	}

	projectStore, err := store.NewProjectStore(snapshots)
	if err != nil {
		log.Fatalf("main: не удалось загрузить пул проектов: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Кошелёк: stub-провайдер опционален, без него сервис отвечает
	// walletURL вместо сессии.
	var provider wallet.Provider
	if cfg.WalletEnabled {
		stub, err := wallet.NewStubProvider(cfg.StoragePath)
		if err != nil {
			log.Fatalf("main: не удалось инициализировать кошелёк: %v", err)
		}
		provider = stub
	}
	walletAdapter := wallet.NewAdapter(provider)

	// Наблюдатель регистрируется до старта, чтобы не пропустить тихое
	// переподключение.
	observer := &walletObserver{hub: hub}
	walletAdapter.Register(observer)
	defer walletAdapter.Deregister(observer)

	walletAdapter.Start(ctx)
	defer safeClose(walletAdapter)

	// Сервисы.
	sessions := service.NewSessionTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	advisor := ai.NewClient(cfg.AIBaseURL, cfg.AIModel)
	marketplace := service.NewMarketplaceService(projectStore, advisor, hub)

	// HTTP хэндлеры.
	sessionHandler := httpHandlers.NewSessionHandler(walletAdapter, sessions, cfg.WalletURL)
	projectHandler := httpHandlers.NewProjectHandler(marketplace)
	proposalHandler := httpHandlers.NewProposalHandler(marketplace)
	advisorHandler := httpHandlers.NewAdvisorHandler(marketplace)
	ledgerHandler := httpHandlers.NewLedgerHandler(marketplace)
	wsHandler := httpHandlers.NewWSHandler(hub, sessions)
	healthHandler := httpHandlers.NewHealthHandler(snapshots, walletAdapter)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, sessionHandler, projectHandler, proposalHandler, advisorHandler, ledgerHandler, wsHandler, healthHandler, sessions)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// walletObserver транслирует события кошелька в websocket-ленту.
type walletObserver struct {
	hub *ws.Hub
}

func (o *walletObserver) OnAddressChanged(address string) {
	o.hub.Publish("wallet_address_changed", map[string]any{
		"address": models.ShortAddress(address),
	})
}

func (o *walletObserver) OnDisconnected() {
	o.hub.Publish("wallet_disconnected", nil)
}

// safeClose отключает адаптер кошелька.
func safeClose(adapter *wallet.Adapter) {
	if err := adapter.Close(); err != nil {
		log.Printf("main: ошибка остановки адаптера кошелька: %v", err)
	}
}
