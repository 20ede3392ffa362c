package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/SlpAus/keluhkesah-backend/internal/board"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// renderView 把整个列表写到w
func renderView(w io.Writer, view board.View) {
	if view.Err != nil {
		fmt.Fprintf(w, "⚠️  Gagal memuat keluh kesah. Coba lagi nanti ya! 😢 (%v)\n", view.Err)
	}
	if view.Empty() {
		fmt.Fprintln(w, "Belum ada keluh kesah. Yuk, jadi yang pertama! 🚀")
		return
	}
	for i, ev := range view.Entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderEntry(w, ev)
	}
}

// renderEntry 写出一个条目：标题、正文、反应按钮和评论面板
func renderEntry(w io.Writer, ev board.EntryView) {
	fmt.Fprintf(w, "%s %s · %s  [%s]\n", reaction.RandomMood(), ev.Name, ev.DisplayTime(), ev.ID)
	for _, line := range strings.Split(ev.Message, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}

	buttons := make([]string, 0, len(ev.Reactions))
	for _, r := range ev.Reactions {
		buttons = append(buttons, fmt.Sprintf("%s %d", r.Label(), r.Count))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(buttons, "  "))

	if !ev.Expanded {
		fmt.Fprintf(w, "  💬 Lihat/Tambah Komentar (%d) 👇\n", len(ev.Comments))
		return
	}
	fmt.Fprintln(w, "  💬 Sembunyikan Komentar 👆")
	switch {
	case !ev.CommentsLoaded:
		fmt.Fprintln(w, "    Gagal memuat komentar. 😞")
	case len(ev.Comments) == 0:
		fmt.Fprintln(w, "    Belum ada komentar di sini. Jadilah yang pertama! 💬")
	default:
		for _, c := range ev.Comments {
			fmt.Fprintf(w, "    - %s (%s): %s\n", c.Name, c.DisplayTime(), c.Body)
		}
	}
	if ev.Draft.Text != "" {
		fmt.Fprintf(w, "    ✏️  draf: %s\n", ev.Draft.Text)
	}
}

// renderReactionLegend 列出可用的反应名字，用于帮助信息
func renderReactionLegend(w io.Writer) {
	for _, k := range reaction.All {
		info := k.Info()
		fmt.Fprintf(w, "  %-9s %s %s\n", k.String(), info.Emoji, info.Label)
	}
}
