package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-sim/internal/app"
	"github.com/annel0/voxel-sim/internal/config"
	"github.com/annel0/voxel-sim/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $GAME_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Сигналы ОС отменяют контекст симуляции
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("🎮 Запуск симуляции voxel-sim...")
	sim, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации: %v", err)
	}

	logging.Info("✅ Все подсистемы запущены")
	if cfg.Observability.MetricsPort >= 0 {
		logging.Info("   📈 Метрики: http://localhost:%d/metrics", cfg.Observability.GetMetricsPort())
	}
	logging.Info("   💾 Хранилище: %s, автосохранение каждые %v", cfg.Storage.Backend, cfg.Storage.SaveInterval())

	runErr := sim.Run(ctx)
	if runErr != nil {
		logging.Error("❌ Симуляция завершилась с ошибкой: %v", runErr)
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Info("📡 Завершение работы...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sim.Close(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки: %v", err)
	}

	log.Println("👋 Симуляция остановлена")
	if runErr != nil {
		os.Exit(1)
	}
}
