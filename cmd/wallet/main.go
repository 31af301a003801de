package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/offgridpay/voucher-wallet/docs"
	"github.com/offgridpay/voucher-wallet/internal/api"
	"github.com/offgridpay/voucher-wallet/internal/client"
	"github.com/offgridpay/voucher-wallet/internal/config"
	"github.com/offgridpay/voucher-wallet/internal/ledger"
	"github.com/offgridpay/voucher-wallet/internal/wallet"
)

// @title Offline Voucher Wallet API
// @version 1.0
// @description Offline value transfer via signed QR vouchers with a local pending-transaction ledger
// @BasePath /
func main() {
	// Load .env
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := config.Init(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	store, err := ledger.Open(config.GetDataDir())
	if err != nil {
		logger.Fatal("failed to open ledger", zap.Error(err))
	}

	guard, err := ledger.NewAllowanceGuard(store, config.GetOfflineLimit())
	if err != nil {
		logger.Fatal("failed to set up allowance guard", zap.Error(err))
	}

	var settlement *client.SettlementClient
	if url := config.GetSettlementURL(); url != "" {
		settlement = client.NewSettlementClient(url)
	}

	svc, err := wallet.New(store, guard, settlement, config.GetWalletKey(), logger)
	if err != nil {
		logger.Fatal("failed to set up wallet service", zap.Error(err))
	}

	router := api.SetupRouter(svc, logger)

	logger.Info("wallet service running",
		zap.String("port", config.GetPort()),
		zap.String("deviceId", svc.DeviceID()))

	if err := http.ListenAndServe(":"+config.GetPort(), router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
