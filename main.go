package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"leadscope/internal/auth"
	"leadscope/internal/cache"
	"leadscope/internal/config"
	"leadscope/internal/dataset"
	"leadscope/internal/enrich"
	"leadscope/internal/server"
	"leadscope/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ips, err := dataset.LoadIPTable(cfg.IPDatasetPath)
	if err != nil {
		log.Fatal("failed to load IP reference table", "err", err)
	}
	companies, err := dataset.LoadCompanyTable(cfg.CompanyDatasetPath)
	if err != nil {
		log.Fatal("failed to load company reference table", "err", err)
	}
	asndb := dataset.OpenASNDB(cfg.MMDBPath)

	svc := enrich.NewService(enrich.Config{
		Cache:         cache.New(cfg.CacheMaxEntries),
		IPs:           ips,
		Companies:     companies,
		ASNDB:         asndb,
		SuccessTTL:    cfg.SuccessTTL,
		FilteredTTL:   cfg.FilteredTTL,
		SweepInterval: 5 * time.Minute,
	})
	defer svc.Close()

	var st store.Store
	if cfg.StoreType != "" {
		st, err = store.New(cfg.StoreType, cfg.StoreDSN, cfg.VisitRetention)
		if err != nil {
			log.Warn("failed to open store, persistence disabled", "err", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	srv := server.New(svc, st, auth.New(cfg.JWTSecret))

	addr := cfg.Host + ":" + cfg.Port
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down")
		httpServer.Close()
	}()

	log.Info("leadscope starting", "addr", addr,
		"ip_records", ips.Len(), "companies", companies.Len(),
		"asn_db", asndb.Loaded(), "store", st != nil)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("server error", "err", err)
	}

	log.Info("server stopped")
}
