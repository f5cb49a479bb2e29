package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCommand is returned for input that is not a table command
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind identifies what the user asked for
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandStart
	CommandBet    // replace the bet with Amount
	CommandAdjust // add Amount (may be negative) to the current bet
	CommandHit
	CommandStand
	CommandJoin
	CommandHelp
	CommandQuit
)

// Command is one parsed line of user input
type Command struct {
	Kind   CommandKind
	Amount int
	Room   string
}

// ParseCommand parses a line typed at the prompt. Blank input parses to
// CommandNone.
func ParseCommand(input string) (Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{Kind: CommandNone}, nil
	}

	if input[0] == '+' || input[0] == '-' {
		n, err := strconv.Atoi(input)
		if err != nil {
			return Command{}, fmt.Errorf("invalid bet adjustment %q", input)
		}
		return Command{Kind: CommandAdjust, Amount: n}, nil
	}

	fields := strings.Fields(input)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "start", "deal", "s":
		return Command{Kind: CommandStart}, nil
	case "hit", "h":
		return Command{Kind: CommandHit}, nil
	case "stand", "st":
		return Command{Kind: CommandStand}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CommandQuit}, nil

	case "bet", "b":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: bet <amount>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return Command{}, fmt.Errorf("invalid bet amount %q", args[0])
		}
		return Command{Kind: CommandBet, Amount: n}, nil

	case "join", "j":
		// Room names may contain spaces
		room := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		if room == "" {
			return Command{}, fmt.Errorf("usage: join <room>")
		}
		return Command{Kind: CommandJoin, Room: room}, nil
	}

	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

// AdjustBet applies a relative change, clamped to [0, credits]
func AdjustBet(current, delta, credits int) int {
	return max(0, min(current+delta, credits))
}

const helpText = "start | bet N | +N/-N | hit | stand | join <room> | quit"
