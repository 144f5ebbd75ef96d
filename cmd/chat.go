package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/dependency"
	"github.com/goodfoods/goodfoods/internal/schema"
	"github.com/goodfoods/goodfoods/internal/shared/cmdutils"
)

var (
	chatMessage string
	chatSession string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the reservation assistant",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and exit")
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "cli:direct", "Session ID")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	channel, chatId := parseSessionKey(chatSession)

	if chatMessage != "" {
		return runSingleMessage(container.AgentLoop(), chatSession, channel, chatId)
	}

	return runInteractive(container, channel, chatId)
}

// runSingleMessage sends one message to the agent and prints the response.
func runSingleMessage(loop schema.AgentLooper, sessionKey, channel, chatId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Fprintf(os.Stderr, "  ↳ thinking...\n")
	res := loop.ProcessDirect(ctx, chatMessage, sessionKey, channel, chatId)

	cmdutils.PrintResponse(res)
	return nil
}

// runInteractive starts the REPL loop: reads lines from stdin, sends each to
// the agent via the bus, and waits for each reply before prompting again.
func runInteractive(container *dependency.Container, channel, chatId string) error {
	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenForSignals(cancel)

	go func() { _ = container.AgentLoop().Run(ctx) }()

	inbound := container.AgentBus()
	console := container.ConsoleBus()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		sendAndWait(ctx, inbound, console, channel, chatId, line)
	}
}

// listenForSignals cancels ctx on SIGINT or SIGTERM and exits.
func listenForSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		cancel()
		os.Exit(0)
	}()
}

// sendAndWait pushes a message onto the inbound bus and blocks until the agent
// publishes the final reply (or ctx is cancelled).
func sendAndWait(ctx context.Context, inbound *bus.AgentBus, console *bus.ConsoleBus, channel, chatId, content string) {
	inbound.Publish(bus.NewAgentBusMessage(bus.Channel(channel), bus.SenderIdCLI, chatId, content, ""))

	for {
		select {
		case msg := <-console.Subscribe():
			if prog, _ := msg.Metadata()["_progress"].(bool); prog {
				fmt.Printf("  ↳ %s\n", msg.Content())
				continue
			}
			cmdutils.PrintResponse(msg.Content())
			return
		case <-ctx.Done():
			return
		}
	}
}

// parseSessionKey splits a session flag into channel and chat ID.
// A bare value with no colon is treated as a CLI chat ID.
func parseSessionKey(key string) (channel, chatID string) {
	ch, chat := bus.ParseRoutingKey(key)
	if chat == "" {
		return string(bus.ChannelCLI), string(ch)
	}
	return string(ch), chat
}
