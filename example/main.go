// Command example runs an aggregator and a common reference operator
// in one process and sends a portfolio update between them.
//
// Discovery is stubbed out with static resolvers so the example works
// without published DNS records. In a real deployment both sides find
// each other through the _usef records instead.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/uftp-dev/shapeshifter-go/client"
	"github.com/uftp-dev/shapeshifter-go/service"
	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

const (
	agrDomain = "agr.example.com"
	croDomain = "cro.example.com"
)

// croHandler logs every portfolio message the operator receives.
type croHandler struct {
	received chan uftp.PayloadMessage
}

func (h *croHandler) ProcessAgrPortfolioQuery(message *uftp.AgrPortfolioQuery) error {
	return h.record(message)
}

func (h *croHandler) ProcessAgrPortfolioUpdate(message *uftp.AgrPortfolioUpdate) error {
	return h.record(message)
}

func (h *croHandler) ProcessDsoPortfolioQuery(message *uftp.DsoPortfolioQuery) error {
	return h.record(message)
}

func (h *croHandler) ProcessDsoPortfolioUpdate(message *uftp.DsoPortfolioUpdate) error {
	return h.record(message)
}

func (h *croHandler) record(message uftp.PayloadMessage) error {
	slog.Info("operator received message",
		"kind", message.Kind(),
		"sender", message.Meta().SenderDomain,
		"message_id", message.Meta().MessageID)
	h.received <- message
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	agrKeys, err := transport.GenerateKeyPair()
	if err != nil {
		return err
	}
	croKeys, err := transport.GenerateKeyPair()
	if err != nil {
		return err
	}

	handler := &croHandler{received: make(chan uftp.PayloadMessage, 1)}

	cro, err := service.NewCro(service.Config{
		SenderDomain: croDomain,
		SigningKey:   croKeys.Private,
		BindHost:     "127.0.0.1",
	}, handler,
		service.WithKeyResolver(func(context.Context, string, uftp.Role) (string, error) {
			return agrKeys.Public, nil
		}),
		service.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	)
	if err != nil {
		return err
	}
	if err := cro.Start(); err != nil {
		return err
	}
	defer cro.Shutdown(context.Background())

	agr, err := client.NewAgrCro(client.Config{
		SenderDomain:        agrDomain,
		SigningKey:          agrKeys.Private,
		RecipientDomain:     croDomain,
		RecipientEndpoint:   cro.Endpoint(),
		RecipientSigningKey: croKeys.Public,
	})
	if err != nil {
		return err
	}
	defer agr.Stop()

	update := &uftp.AgrPortfolioUpdate{
		Connections: []uftp.AgrPortfolioUpdateConnection{
			{EntityAddress: "ean.871685900012636543", StartPeriod: uftp.NewDate(2026, 1, 1)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := agr.SendAgrPortfolioUpdate(ctx, update); err != nil {
		return err
	}

	select {
	case message := <-handler.received:
		fmt.Printf("delivered %s %s\n", message.Kind(), message.Meta().MessageID)
	case <-ctx.Done():
		return fmt.Errorf("operator did not receive the update: %w", ctx.Err())
	}
	return nil
}
