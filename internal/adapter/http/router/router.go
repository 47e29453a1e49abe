package router

import "net/http"

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

type TransactionRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

func New(
	accountController AccountRouteRegistrar,
	transactionController TransactionRouteRegistrar,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if accountController != nil {
		accountController.RegisterRoutes(mux)
	}
	if transactionController != nil {
		transactionController.RegisterRoutes(mux)
	}

	return mux
}
