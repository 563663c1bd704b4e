package main

import (
	"fmt"
	"io"
	"strings"

	"albumviewer/internal/flow"
)

func renderUsers(w io.Writer, v flow.UserListView) {
	fmt.Fprintf(w, "== %s ==\n", v.Title)
	switch {
	case v.Status == flow.StatusLoading:
		fmt.Fprintln(w, "loading...")
		return
	case v.Error != "":
		fmt.Fprintln(w, v.Error)
		return
	case v.Message != "":
		fmt.Fprintln(w, v.Message)
		return
	}
	if v.AlbumError != "" {
		fmt.Fprintf(w, "! %s\n", v.AlbumError)
	}
	for _, u := range v.Users {
		marker := " "
		if u.Expanded {
			marker = ">"
		}
		fmt.Fprintf(w, "%s [%d] %s\n", marker, u.ID, u.Name)
		if !u.Expanded {
			continue
		}
		for _, a := range u.Albums {
			fmt.Fprintf(w, "    [%d] %s%s\n", a.ID, a.Title, phaseSuffix(a))
		}
		switch {
		case u.AlbumsLoading:
			fmt.Fprintln(w, "    loading...")
		case u.EmptyMessage != "":
			fmt.Fprintf(w, "    %s\n", u.EmptyMessage)
		}
	}
}

func phaseSuffix(a flow.AlbumRow) string {
	switch a.Phase {
	case flow.PhaseConfirming:
		return fmt.Sprintf("  -- %s [y/n]", a.Prompt)
	case flow.PhaseRemoving:
		return "  -- removing"
	}
	return ""
}

func renderPhotos(w io.Writer, v flow.AlbumPhotosView) {
	star := "☆"
	if v.ShowAll {
		star = "★"
	}
	fmt.Fprintf(w, "== %s %s ==\n", v.Title, star)
	if v.Loading {
		fmt.Fprintln(w, "loading...")
		return
	}
	for _, row := range v.Rows {
		cells := make([]string, 0, len(row))
		for _, p := range row {
			cells = append(cells, fmt.Sprintf("[%d] %s", p.ID, p.ThumbnailUrl))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, " | "))
	}
	fmt.Fprintf(w, "%d photos\n", v.Count)
}
