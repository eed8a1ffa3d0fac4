package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"im-client/internal/config"
	"im-client/internal/models"
	"im-client/internal/storage"
)

func usage() {
	fmt.Println("使用方法:")
	fmt.Println("  admin [--config path] friends <username>            - 列出用户的好友")
	fmt.Println("  admin [--config path] requests <username>           - 列出用户收到的待处理好友请求")
	fmt.Println("  admin [--config path] history <username> <username> - 显示两个用户之间的消息")
	fmt.Println("  admin [--config path] search <query>                - 按用户名搜索用户")
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the config file")
	limit := pflag.IntP("limit", "n", 50, "maximum number of messages for history")
	pflag.Usage = usage
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	db, err := storage.InitDB(cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化数据库: %v\n", err)
		os.Exit(1)
	}

	a := newAdmin(db, os.Stdout)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "friends":
		err = a.friends(ctx, args[1])
	case "requests":
		err = a.requests(ctx, args[1])
	case "history":
		if len(args) < 3 {
			usage()
			os.Exit(1)
		}
		err = a.history(ctx, args[1], args[2], *limit)
	case "search":
		err = a.search(ctx, args[1])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("admin command failed", slog.String("command", args[0]), slog.Any("error", err))
		os.Exit(1)
	}
}

type admin struct {
	users       storage.UserRepository
	requestRepo storage.FriendRequestRepository
	friendships storage.FriendshipRepository
	messages    storage.MessageRepository
	out         io.Writer
}

func newAdmin(db *gorm.DB, out io.Writer) *admin {
	return &admin{
		users:       storage.NewGormUserRepository(db),
		requestRepo: storage.NewGormFriendRequestRepository(db),
		friendships: storage.NewGormFriendshipRepository(db),
		messages:    storage.NewGormMessageRepository(db),
		out:         out,
	}
}

func (a *admin) user(ctx context.Context, username string) (*models.User, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("用户 %q 不存在", username)
	}
	return u, err
}

func (a *admin) friends(ctx context.Context, username string) error {
	u, err := a.user(ctx, username)
	if err != nil {
		return err
	}
	ids, err := a.friendships.GetFriendIDs(ctx, u.ID)
	if err != nil {
		return err
	}
	friends, err := a.users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	a.userTable(friends)
	return nil
}

func (a *admin) requests(ctx context.Context, username string) error {
	u, err := a.user(ctx, username)
	if err != nil {
		return err
	}
	pending, err := a.requestRepo.GetPendingRequestsForUser(ctx, u.ID)
	if err != nil {
		return err
	}
	table := a.table("Request ID", "From", "From ID", "Sent At")
	for _, r := range pending {
		table.Append([]string{r.IDString(), r.Requester.Username, strconv.FormatUint(uint64(r.RequesterUserID), 10), r.CreatedAt.Format(time.DateTime)})
	}
	table.Render()
	return nil
}

func (a *admin) history(ctx context.Context, first, second string, limit int) error {
	u1, err := a.user(ctx, first)
	if err != nil {
		return err
	}
	u2, err := a.user(ctx, second)
	if err != nil {
		return err
	}
	msgs, err := a.messages.Between(ctx, u1.ID, u2.ID, limit)
	if err != nil {
		return err
	}
	table := a.table("Sent At", "From", "Message")
	for _, m := range msgs {
		table.Append([]string{m.SentAt.Format(time.DateTime), m.Sender.Username, m.Content})
	}
	table.Render()
	return nil
}

func (a *admin) search(ctx context.Context, query string) error {
	users, err := a.users.Search(ctx, query, 0)
	if err != nil {
		return err
	}
	a.userTable(users)
	return nil
}

func (a *admin) userTable(users []models.User) {
	table := a.table("ID", "Username", "Avatar", "Last Seen")
	for _, u := range users {
		lastSeen := "-"
		if u.LastSeenAt != nil {
			lastSeen = u.LastSeenAt.Format(time.DateTime)
		}
		p := u.Profile()
		table.Append([]string{p.ID, p.DisplayName, p.AvatarURL, lastSeen})
	}
	table.Render()
}

func (a *admin) table(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(a.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}
