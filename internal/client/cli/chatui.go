package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bridgehq/bridge/internal/client/chat"
	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/common"
)

// runChat syncs and displays the group conversation until the user leaves
// the group (left=true) or quits the app (left=false).
func (a *App) runChat(ctx context.Context) (left bool, err error) {
	group := a.coordinator.Group()

	fmt.Fprintln(a.out, "\n=== Your Bridge Group ===")
	names := make([]string, 0, len(group.Members()))
	for _, m := range group.Members() {
		names = append(names, m.FirstName)
	}
	fmt.Fprintf(a.out, "Members: %s\n", strings.Join(names, ", "))

	sync := chat.NewSync(a.client, a.log, group.ID(), a.config.ChatPollInterval)
	defer sync.Stop()

	if err := sync.Open(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not load chat history: %v\n", err)
	} else {
		for _, m := range sync.Messages() {
			a.printMessage(m)
		}
		if len(sync.Messages()) == 0 {
			fmt.Fprintln(a.out, "No messages yet. Start the conversation!")
		}
	}

	// Registered after Open so the history merge does not echo through the
	// callback on top of the explicit dump above.
	sync.OnNewMessages(func(added []models.Message) {
		for _, m := range added {
			a.printMessage(m)
		}
	})
	sync.Start(ctx)

	fmt.Fprintln(a.out, "Type a message, or /leave to leave the group, /quit to exit.")
	for {
		line, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			return false, err
		}

		switch line {
		case "/quit":
			return false, nil

		case "/leave":
			ok, err := Confirm(a.reader, "Leave this group? You can find new matches after leaving.", a.out)
			if err != nil {
				return false, err
			}
			if !ok {
				continue
			}
			if err := sync.Leave(ctx); err != nil {
				fmt.Fprintf(a.out, "Could not leave the group: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, "You left the group.")
			return true, nil

		default:
			if _, err := sync.Send(ctx, line); err != nil {
				if errors.Is(err, common.ErrEmptyMessage) {
					continue
				}
				fmt.Fprintf(a.out, "Message not sent: %v\n", err)
			}
		}
	}
}

func (a *App) printMessage(m models.Message) {
	you := m.SenderID == a.session.User().ID
	name := m.SenderName
	if you {
		name = "you"
	}
	fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt.Format("15:04"), name, m.Text)
}
