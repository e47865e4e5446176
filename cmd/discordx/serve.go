package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/discordx/pkg/discord"
	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startServe(ct *cli.Context) error {
	if err := s.boot(ct); err != nil {
		return err
	}

	key, err := hex.DecodeString(s.configs.Discord.PublicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid application public key")
	}

	if _, err := s.client.FetchGuilds(s.ctx); err != nil {
		s.logger.Warnf("Cannot fetch guilds: %v", err)
	}

	webhook := http.NewServeMux()
	webhook.Handle("/interactions", discord.InteractionHandler(s.client, ed25519.PublicKey(key), s.handleInteraction))

	metrics := http.NewServeMux()
	metrics.Handle("/metrics", prometheus.NewHandler())

	servers := []*http.Server{
		{Addr: ct.String("addr"), Handler: webhook},
		{Addr: s.configs.Metrics.Address(), Handler: metrics},
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, server := range servers {
		server := server
		g.Go(func() error {
			s.logger.Infof("Starting server on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				s.logger.Errorf("Cannot shutdown server %s: %v", server.Addr, err)
			}
		}
		return nil
	})

	err = g.Wait()
	s.logger.Infof("Server stopped")
	return err
}

// handleInteraction answers slash commands with a short ephemeral description
// of the invoker.
func (s *srv) handleInteraction(ctx context.Context, i *discord.Interaction) {
	if !i.IsSlash() {
		return
	}

	content := fmt.Sprintf("Hello %s", i.User.DisplayName())
	if i.Member != nil {
		content = fmt.Sprintf("Hello %s, you have %d roles", i.Member.DisplayName(), i.Member.Roles.Cache().Len())
	}

	if _, err := i.Reply(ctx, payload.Options{Content: content, Ephemeral: true}); err != nil {
		s.logger.Errorf("Cannot reply to interaction %s: %v", i.ID, err)
	}
}
