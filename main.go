package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/tvuforum/syncGo/interactions"
	"github.com/tvuforum/syncGo/logger"
	"github.com/tvuforum/syncGo/models"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	likeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

func init() {
	err := godotenv.Load()
	if err != nil {
		logger.Debug("No .env file loaded", zap.Error(err))
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "forumwatch",
		Usage: "Watch live comment and like activity on forum posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "forumwatch.yaml",
				Usage:   "path to config file",
			},
			&cli.StringSliceFlag{
				Name:  "post",
				Usage: "post id to watch (repeatable, adds to config)",
			},
		},
		Action: runWatch,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	config, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	posts := append(config.Posts, cmd.StringSlice("post")...)
	if len(posts) == 0 {
		return errors.New("no posts to watch")
	}

	inj, err := NewInject(config)
	if err != nil {
		return err
	}

	if err := inj.Channel.Connect(ctx); err != nil {
		return err
	}
	defer inj.Channel.Close()

	projections := make([]*interactions.Projection, 0, len(posts))
	for _, postId := range posts {
		projection, err := inj.Synchronizer.Open(ctx, postId, interactions.Options{
			OnChange: printChange,
		})
		if err != nil {
			logger.Error("Failed opening post projection", zap.String("postId", postId), zap.Error(err))
			continue
		}

		view := projection.View()
		fmt.Printf("%s %s\n",
			titleStyle.Render(postId),
			dimStyle.Render(fmt.Sprintf("%d comments, %d likes", view.CommentCount, view.LikeCount)))
		projections = append(projections, projection)
	}
	if len(projections) == 0 {
		return errors.New("no posts could be opened")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	for _, projection := range projections {
		projection.Close()
	}
	return nil
}

func printChange(change interactions.InteractionChange) {
	style := commentStyle
	if change.Kind == models.LikeChanged {
		style = likeStyle
	}
	fmt.Printf("%s %s %s\n",
		dimStyle.Render(change.PostId),
		style.Render(string(change.Kind)),
		dimStyle.Render(fmt.Sprintf("comments=%d likes=%d", change.CommentCount, change.LikeCount)))
}
