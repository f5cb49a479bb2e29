package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/client"
	"github.com/lox/blackjack/internal/tui"
)

type ClientCmd struct {
	URL      string `kong:"default='ws://localhost:8080/ws',help='WebSocket server URL'"`
	Room     string `kong:"default='Room 1',help='Room to join'"`
	Name     string `kong:"default='',help='Display name (defaults to $USER or \"Player\")'"`
	PlayerID string `kong:"default='',help='Player id to reclaim a seat (generated if empty)'"`
	NoColor  bool   `kong:"help='Disable colors'"`
	LogFile  string `kong:"default='blackjack-client.log',help='Debug log file'"`
}

func (c *ClientCmd) Run() error {
	tui.SetColor(!c.NoColor)

	logger, closeLog, err := shared.SetupFileLogger(c.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	seat := tui.Seat{
		Room:     strings.TrimSpace(c.Room),
		PlayerID: strings.TrimSpace(c.PlayerID),
		Name:     strings.TrimSpace(c.Name),
	}
	if seat.PlayerID == "" {
		seat.PlayerID = uuid.NewString()
	}
	if seat.Name == "" {
		seat.Name = defaultName()
	}
	logger.Info("Starting client", "url", c.URL, "room", seat.Room, "player", seat.PlayerID)

	conn := client.NewClient(strings.TrimSpace(c.URL), logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = conn.Disconnect() }()

	model := tui.NewModel(conn, conn.Messages(), seat, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func defaultName() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "Player"
}
