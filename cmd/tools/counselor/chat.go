package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/service/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive advice session",
	Long: `Start an interactive advice session grounded in the learner profile.

Type a question and press enter. Blank lines are ignored.
Type /quit or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	profile, err := loadProfile(profileFile, a.seed.DefaultProfile)
	if err != nil {
		return err
	}

	svc := chat.NewService(a.client,
		chat.WithGreeting(a.client.Persona().OpeningLine),
		chat.WithDefaultProfile(a.seed.DefaultProfile),
		chat.WithLogger(a.log),
	)
	return chatLoop(ctx, svc, a.client.Persona().Name, profile, cmd.InOrStdin(), cmd.OutOrStdout())
}

// chatLoop runs one session until the input ends, /quit is typed, or ctx is done.
func chatLoop(ctx context.Context, svc *chat.Service, advisorName string, profile learner.Profile, in io.Reader, out io.Writer) error {
	session, transcript, err := svc.CreateSession(ctx, &profile)
	if err != nil {
		return err
	}
	for _, msg := range transcript {
		fmt.Fprintf(out, "%s: %s\n", advisorName, msg.Text)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		exchange, err := svc.Ask(ctx, session.ID, text)
		if errors.Is(err, chat.ErrInvalidInput) {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", advisorName, exchange.Answer.Text)
	}
}
