package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/offgridpay/voucher-wallet/internal/handler"
	"github.com/offgridpay/voucher-wallet/internal/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(svc *wallet.Service, log *zap.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(svc, log)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/issue", walletHandler.Issue)
	mux.HandleFunc("/wallet/redeem", walletHandler.Redeem)
	mux.HandleFunc("/wallet/balances", walletHandler.Balances)
	mux.HandleFunc("/wallet/transactions", walletHandler.Transactions)
	mux.HandleFunc("/wallet/allowance", walletHandler.Allowance)
	mux.HandleFunc("/wallet/allowance/reset", walletHandler.ResetAllowance)
	mux.HandleFunc("/wallet/fund", walletHandler.Fund)
	mux.HandleFunc("/wallet/reconcile", walletHandler.Reconcile)
	mux.HandleFunc("/wallet/address", walletHandler.Address)
	mux.HandleFunc("/wallet/address/qr", walletHandler.AddressQR)

	return mux
}
