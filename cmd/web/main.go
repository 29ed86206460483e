package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/evade/internal/config"
	"github.com/tomz197/evade/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.WebAddr(),
		Handler:           newHandler(htmlPage, cfg.SSHDisplayHost, cfg.SSHPort, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting web server", "addr", "http://"+cfg.WebAddr())
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down web server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// newHandler serves the landing page. An empty displayHost falls back to the
// host the visitor used to reach the page.
func newHandler(page, displayHost string, sshPort int, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		host := displayHost
		if host == "" {
			host = requestHost(r)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		body := strings.NewReplacer(
			"{{.SSHCommand}}", html.EscapeString(sshCommand(host, sshPort)),
			"{{.SSHHost}}", html.EscapeString(host),
		).Replace(page)
		if _, err := fmt.Fprint(w, body); err != nil {
			logger.Debug("write response", "err", err)
		}
	})
	return mux
}

// requestHost returns the request's host without its port.
func requestHost(r *http.Request) string {
	if h, _, err := net.SplitHostPort(r.Host); err == nil {
		return h
	}
	if r.Host == "" {
		return "localhost"
	}
	return r.Host
}

// sshCommand is the command a visitor runs to play.
func sshCommand(host string, port int) string {
	if port == 22 {
		return "ssh " + host
	}
	return "ssh -p " + strconv.Itoa(port) + " " + host
}
