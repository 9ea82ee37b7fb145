package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/agent"
	"github.com/rcliao/mood-companion/internal/llm"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive companion session",
		Long: "Talk to the companion. Each message is routed to the specialist that " +
			"fits it best. Type 'exit' or 'quit' to end the session.",
		Run: runChat,
	}

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	log := newLogger(cfg)
	defer log.Sync()

	ctx := cmd.Context()
	ensureUser(ctx, s, userFlag)
	if _, err := s.SeedDefaultStrategies(ctx); err != nil {
		log.Warn("seed strategies", zap.Error(err))
	}

	timeout, err := time.ParseDuration(cfg.LLM.CallTimeout)
	if err != nil {
		timeout = llm.DefaultCallTimeout
	}

	gemini, err := llm.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model, timeout)
	if err != nil {
		exitErr("connect to Gemini (set GEMINI_API_KEY)", err)
	}

	router := agent.NewDefaultRouter(gemini, gemini, s, log)

	session, err := s.StartConversation(ctx, userFlag)
	if err != nil {
		exitErr("start conversation", err)
	}
	conv := agent.NewConversationContext(userFlag)
	conv.ConversationID = session.ConversationID

	fmt.Println("Hi! I'm your mood companion. How are you feeling today?")
	fmt.Println("(type 'exit' or 'quit' to end the session)")
	fmt.Println()

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		resp, err := router.HandleTurn(ctx, line, conv)
		if errors.Is(err, llm.ErrTimeout) {
			fmt.Println("That took too long to process. Please try again.")
			continue
		}
		if err != nil {
			log.Warn("turn failed", zap.Error(err))
			fmt.Println("Something went wrong on my end. Please try again.")
			continue
		}

		if _, err := s.AppendMessage(ctx, session.ConversationID, userFlag, "user", line); err != nil {
			log.Warn("persist message", zap.Error(err))
		}
		if _, err := s.AppendMessage(ctx, session.ConversationID, userFlag, "assistant", resp.Text); err != nil {
			log.Warn("persist message", zap.Error(err))
		}

		fmt.Println()
		fmt.Println(resp.Text)
		fmt.Println()
	}

	if err := s.EndConversation(ctx, session.ConversationID, ""); err != nil {
		log.Warn("end conversation", zap.Error(err))
	}
	fmt.Println("Take care of yourself. See you next time.")
}
