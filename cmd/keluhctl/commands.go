package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/SlpAus/keluhkesah-backend/internal/board"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"go.uber.org/zap"
)

// app 持有一次命令行调用所需的状态，每次调用相当于一次页面加载
type app struct {
	board *board.Board
	out   io.Writer
}

// errUsage 表示命令行参数不正确
var errUsage = errors.New("参数错误")

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.list(ctx)
	case "post":
		return a.post(ctx, args)
	case "vote":
		return a.vote(ctx, args)
	case "toggle":
		return a.toggle(ctx, args)
	case "comment":
		return a.comment(ctx, args)
	case "reset":
		return a.reset(ctx)
	default:
		return fmt.Errorf("%w: 未知命令 %q", errUsage, cmd)
	}
}

// load 读取列表；失败时仍然渲染上一次的状态（对命令行来说是空的）并返回错误
func (a *app) load(ctx context.Context) error {
	if err := a.board.Load(ctx); err != nil {
		renderView(a.out, a.board.View())
		return err
	}
	return nil
}

func (a *app) list(ctx context.Context) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	// 上次展开的评论面板在页面加载后恢复内容
	if err := a.board.LoadExpandedComments(ctx); err != nil {
		zap.L().Warn("部分评论加载失败", zap.Error(err))
	}
	renderView(a.out, a.board.View())
	return nil
}

func (a *app) post(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "名字，留空则匿名")
	message := fs.String("message", "", "keluh kesah 正文")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *message == "" && fs.NArg() > 0 {
		*message = strings.Join(fs.Args(), " ")
	}

	id, err := a.board.PostEntry(ctx, *name, *message)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Terkirim! 🎉 [%s]\n", id)
	return nil
}

func (a *app) vote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "用法: keluhctl vote <entryID> <reaction>")
		renderReactionLegend(a.out)
		return errUsage
	}
	k, err := reaction.Parse(args[1])
	if err != nil {
		renderReactionLegend(a.out)
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if err := a.load(ctx); err != nil {
		return err
	}

	n, err := a.board.Vote(ctx, args[0], k)
	switch {
	case errors.Is(err, board.ErrDuplicateVote):
		// 不是错误，只是提示
		fmt.Fprintf(a.out, "Kamu sudah memberi reaksi %q untuk keluh kesah ini. %s\n", k.Info().Label, k.Info().VotedEmoji)
		return nil
	case errors.Is(err, board.ErrUpdate):
		fmt.Fprintf(a.out, "Gagal memberikan reaksi %q. Coba lagi ya! 😔\n", k.Info().Label)
		return err
	case err != nil:
		return err
	}
	fmt.Fprintf(a.out, "%s %s → %d\n", k.Info().VotedEmoji, k.Info().Label, n)
	return nil
}

func (a *app) toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: 用法: keluhctl toggle <entryID>", errUsage)
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	id := args[0]
	_, err := a.board.ToggleComments(ctx, id)
	if errors.Is(err, board.ErrUnknownEntry) {
		return err
	}
	a.renderOne(id)
	return err
}

func (a *app) comment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comment", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "名字，留空则匿名")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: 用法: keluhctl comment [-name 名字] <entryID> <评论>", errUsage)
	}
	id := fs.Arg(0)
	text := strings.Join(fs.Args()[1:], " ")

	if err := a.load(ctx); err != nil {
		return err
	}
	err := a.board.SubmitComment(ctx, id, *name, text)
	switch {
	case errors.Is(err, board.ErrValidation):
		fmt.Fprintln(a.out, "Komentar tidak boleh kosong (maks 200 karakter).")
		return err
	case errors.Is(err, board.ErrSubmit):
		fmt.Fprintln(a.out, "Gagal menambahkan komentar. 🥺")
		return err
	case err != nil && !errors.Is(err, board.ErrFetch):
		return err
	}
	// 评论写入后即使刷新失败也渲染条目，面板会显示加载失败
	a.renderOne(id)
	return err
}

func (a *app) reset(ctx context.Context) error {
	if err := a.board.ResetLocal(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Data lokal sudah dihapus.")
	return nil
}

func (a *app) renderOne(id string) {
	for _, ev := range a.board.View().Entries {
		if ev.ID == id {
			renderEntry(a.out, ev)
			return
		}
	}
}
