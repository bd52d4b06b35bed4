package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/justinas/alice"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/pprofserver"
	"github.com/spf13/cobra"
)

func init() {
	serveCmd.Flags().String("addr", "", "listen address, overrides DIALOGTREE_ADDR")
	serveCmd.Flags().String("pprof-port", "", "serve pprof on this localhost port, e.g. :6060")
}

var serveCmd = &cobra.Command{
	Use:   "serve [document]",
	Short: "Serve a generated document locally",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Out
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(err, "stat document", slog.String("path", path))
		}
		addr := cfg.Addr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}
		if pprofPort, _ := cmd.Flags().GetString("pprof-port"); pprofPort != "" {
			pprofserver.Launch(pprofPort, logger)
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, path)
		})

		chain := alice.New(recoverPanic, logRequest, secureHeaders)

		server := &http.Server{
			Addr:         addr,
			Handler:      chain.Then(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		logger.Info("serving document", slog.String("addr", addr), slog.String("path", path))
		if err := server.ListenAndServe(); err != nil {
			return errors.Wrap(err, "serve document")
		}
		return nil
	},
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("received request",
			slog.String("method", r.Method),
			slog.String("uri", r.URL.RequestURI()))

		next.ServeHTTP(w, r)
	})
}

func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				logger.Error("panic serving request", slog.Any("panic", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
