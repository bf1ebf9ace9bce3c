package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/tracker/internal/server"
	"github.com/desertthunder/tracker/internal/services"
	"github.com/desertthunder/tracker/internal/sessions"
	"github.com/desertthunder/tracker/internal/ui"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the tracker server until SIGINT, SIGTERM or ctx cancellation, then shuts down gracefully.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}

	spotify := services.NewSpotifyService(services.SpotifyOpts{
		ClientID:     config.Credentials.Spotify.ClientID,
		ClientSecret: config.Credentials.Spotify.ClientSecret,
		RedirectURI:  config.Credentials.Spotify.RedirectURI,
		HTTPClient:   &http.Client{Timeout: config.Server.UpstreamTimeout.Duration},
	})

	store := sessions.NewMemoryStore(sessions.MemoryStoreOpts{
		PendingTTL:    config.Sessions.PendingTTL.Duration,
		SweepInterval: config.Sessions.SweepInterval.Duration,
		OnSweep: func(evicted int) {
			r.logger.Debug("evicted sessions", "count", evicted)
		},
	})

	router := server.New(server.Options{
		Store:  store,
		OAuth:  spotify,
		API:    spotify,
		Logger: r.logger,
	})
	for _, route := range router.Routes() {
		r.logger.Debug("route registered", "route", route)
	}

	ln, err := net.Listen("tcp", config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Server.Addr(), err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.Start(ctx)
	defer store.Stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	baseURL := displayURL(ln.Addr())
	r.printStartup(baseURL, spotify.Configured())
	r.logger.Info("server started", "addr", ln.Addr().String())

	if cmd.Bool("open") {
		if err := r.openURL(baseURL + "/"); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("Server shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (r *Runner) printStartup(baseURL string, configured bool) {
	r.writePlain("%s\n\n", ui.Banner("tracker"))
	r.writePlain("%s\n", ui.Line("Server", baseURL))
	r.writePlain("%s\n", ui.Line("Dashboard", baseURL+"/"))
	r.writePlain("%s\n", ui.Line("Health", baseURL+"/health"))

	if configured {
		r.writePlain("%s\n", ui.Line("Login", baseURL+"/login"))
		r.writePlain("%s\n", ui.Styles.OK("✓ Spotify credentials configured"))
		return
	}
	r.writePlain("%s\n", ui.Styles.Warn("✗ Spotify credentials not configured: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET"))
}

// displayURL turns a listener address into a browsable base URL, mapping wildcard hosts to localhost.
func displayURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}

	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
