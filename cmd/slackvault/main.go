package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/samber/mo"

	"slackvault/clients/notify"
	slackclient "slackvault/clients/slack"
	"slackvault/config"
	"slackvault/core"
	"slackvault/core/log"
	"slackvault/db"
	"slackvault/models"
	"slackvault/services/export"
	"slackvault/services/query"
	"slackvault/services/txmanager"
	"slackvault/utils"
)

const (
	exitOK = 0
	// exitError covers unrecoverable API or data errors.
	exitError = 1
	// exitInterrupted covers operator interrupts and retry-budget
	// exhaustion; both mean "re-run init later to resume".
	exitInterrupted = 130
)

// InitCommand runs the full export pipeline. Safe to interrupt and re-run:
// already-loaded channels are skipped.
type InitCommand struct{}

func (c *InitCommand) Execute(args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	conn, err := db.NewConnection(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	client := slackclient.NewClient(
		cfg.SlackToken,
		slackclient.WithRetryMargin(time.Duration(cfg.RetryMargin)*time.Second),
		slackclient.WithRetryLimit(cfg.RetryLimit),
	)

	orchestrator := export.NewOrchestrator(
		conn,
		client,
		db.NewUsersRepository(conn),
		db.NewChannelsRepository(conn),
		db.NewMessagesRepository(conn),
		db.NewExportStateRepository(conn),
		txmanager.NewTransactionManager(conn),
		notify.ForResponseURL(cfg.ResponseURL),
	)

	return orchestrator.Run(context.Background())
}

// ListChannelsCommand prints exported channels as JSON, optionally filtered
// by exact name.
type ListChannelsCommand struct {
	Name string `short:"n" long:"name" description:"Only the channel with this name"`
}

func (c *ListChannelsCommand) Execute(args []string) error {
	return withQueryService(func(ctx context.Context, svc *query.QueryService) error {
		channels, err := svc.ListChannels(ctx, models.ChannelFilter{Name: optString(c.Name)})
		if err != nil {
			return err
		}
		return printJSON(channels)
	})
}

// ListUsersCommand prints exported users as JSON, optionally filtered by
// exact real name.
type ListUsersCommand struct {
	Name string `short:"n" long:"name" description:"Only the user with this real name"`
}

func (c *ListUsersCommand) Execute(args []string) error {
	return withQueryService(func(ctx context.Context, svc *query.QueryService) error {
		users, err := svc.ListUsers(ctx, models.UserFilter{RealName: optString(c.Name)})
		if err != nil {
			return err
		}
		return printJSON(users)
	})
}

// MessagesCommand prints exported messages as JSON. All filters are optional
// and combine with AND.
type MessagesCommand struct {
	Channel string `long:"channel" description:"Restrict to the channel with this name"`
	From    string `long:"from"    description:"Earliest message date (dd/mm/yyyy)"`
	To      string `long:"to"      description:"Latest message date (dd/mm/yyyy)"`
	Search  string `long:"search"  description:"Only messages containing this text"`
}

// messageListing is the operator-facing shape of one message row, with the
// raw Slack timestamp rendered as a date.
type messageListing struct {
	Message string `json:"message"`
	User    string `json:"user"`
	Channel string `json:"channel"`
	Date    string `json:"date"`
}

func (c *MessagesCommand) Execute(args []string) error {
	filter := models.MessageFilter{
		ChannelName: optString(c.Channel),
		Search:      optString(c.Search),
	}
	if c.From != "" {
		from, err := utils.ParseDate(c.From)
		if err != nil {
			return err
		}
		filter.From = mo.Some(from)
	}
	if c.To != "" {
		to, err := utils.ParseDate(c.To)
		if err != nil {
			return err
		}
		filter.To = mo.Some(to)
	}

	return withQueryService(func(ctx context.Context, svc *query.QueryService) error {
		rows, err := svc.ListMessages(ctx, filter)
		if err != nil {
			return err
		}
		listings := make([]messageListing, len(rows))
		for i, row := range rows {
			listings[i] = messageListing{
				Message: row.Text,
				User:    row.AuthorName,
				Channel: row.ChannelName,
				Date:    utils.FormatSlackTS(row.TS),
			}
		}
		return printJSON(listings)
	})
}

// withQueryService opens the store, runs fn against the read-side service,
// and closes the store again.
func withQueryService(fn func(context.Context, *query.QueryService) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	conn, err := db.NewConnection(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	svc := query.NewQueryService(
		db.NewUsersRepository(conn),
		db.NewChannelsRepository(conn),
		db.NewMessagesRepository(conn),
	)
	return fn(context.Background(), svc)
}

func optString(s string) mo.Option[string] {
	if s == "" {
		return mo.None[string]()
	}
	return mo.Some(s)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	// An interrupt must not leave a stack trace behind: loaded channels are
	// already durable, so tell the operator how to resume and leave.
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigC
		fmt.Fprintln(os.Stderr, "\nExport interrupted. Run `slackvault init` again to resume from the last loaded channel.")
		os.Exit(exitInterrupted)
	}()

	parser := flags.NewNamedParser("slackvault", flags.Default)
	mustAddCommand(parser, "init", "Export the workspace",
		"Exports all users, channels and message history from Slack into the local store. Interruptible and resumable.", &InitCommand{})
	mustAddCommand(parser, "list-channels", "List exported channels",
		"Prints exported channels as JSON.", &ListChannelsCommand{})
	mustAddCommand(parser, "list-users", "List exported users",
		"Prints exported users as JSON.", &ListUsersCommand{})
	mustAddCommand(parser, "messages", "List exported messages",
		"Prints exported messages as JSON, with optional channel, date and search filters.", &MessagesCommand{})

	if _, err := parser.Parse(); err != nil {
		os.Exit(exitCodeFor(err))
	}
	os.Exit(exitOK)
}

func mustAddCommand(parser *flags.Parser, name, short, long string, cmd any) {
	if _, err := parser.AddCommand(name, short, long, cmd); err != nil {
		panic(err)
	}
}

func exitCodeFor(err error) int {
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) {
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}

	if errors.Is(err, core.ErrRetryBudgetExceeded) {
		log.Error("❌ Rate limit retry budget exhausted. Run `slackvault init` again later to resume the export.")
		return exitInterrupted
	}
	if apiErr, ok := core.IsAPIError(err); ok {
		log.Error("❌ %v", apiErr)
		return exitError
	}

	log.Error("❌ %v", err)
	return exitError
}
