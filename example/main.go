package main

import (
	"flag"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/nimble-ui/core"
	"github.com/nimble-ui/core/example/components"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	store := NewStore()
	reg := cfg.NewRegistry(core.WithLogger(logger))
	app := &app{store: store, reg: reg, set: components.Init(store, reg), logger: logger}

	logger.Info("starting server", "addr", *addr, "components", reg.Path())
	if err := http.ListenAndServe(*addr, app.routes()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type app struct {
	store  *Store
	reg    *core.Registry
	set    *components.Set
	logger *slog.Logger
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(a.reg.Path(), a.reg.Handler())
	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("POST /todos", a.handleAdd)
	mux.HandleFunc("POST /todos/{id}/toggle", a.handleToggle)
	mux.HandleFunc("DELETE /todos/{id}", a.handleDelete)
	return mux
}

func (a *app) handleIndex(w http.ResponseWriter, r *http.Request) {
	status := components.Status(r.URL.Query().Get("status"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, "<!DOCTYPE html>")
	if err := core.RenderHTML(r.Context(), w, a.set.Layout(status), a.reg.HTMLOptions()...); err != nil {
		a.logger.Warn("render page", "error", err)
	}
}

func (a *app) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !core.IsHTMX(r) {
		http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.PostForm.Get("title"))
	if title == "" {
		http.Error(w, "Title is required", http.StatusUnprocessableEntity)
		return
	}
	var tags []components.Tag
	for _, t := range r.PostForm["tag"] {
		tags = append(tags, components.Tag(t))
	}
	id := a.store.Add(title, tags)
	a.logger.Debug("todo added", "id", id)
	a.respondList(w, r)
}

func (a *app) handleToggle(w http.ResponseWriter, r *http.Request) {
	if !core.IsHTMX(r) {
		http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
		return
	}
	if !a.store.Toggle(r.PathValue("id")) {
		http.NotFound(w, r)
		return
	}
	a.respondList(w, r)
}

func (a *app) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !core.IsHTMX(r) {
		http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
		return
	}
	if !a.store.Delete(r.PathValue("id")) {
		http.NotFound(w, r)
		return
	}
	a.respondList(w, r)
}

// respondList re-renders the list for the filter of the page the request
// came from. The response replaces the <ul> inside the page's existing
// <nb-component> wrapper, so it is rendered without one.
func (a *app) respondList(w http.ResponseWriter, r *http.Request) {
	props := components.TodoListProps{Status: statusFromReferer(r)}
	view := core.C(a.set.TodoList, core.Static(props))
	if err := core.Respond(w, r, view, core.WithHTMLLogger(a.logger)); err != nil {
		a.logger.Warn("render list", "error", err)
	}
}

func statusFromReferer(r *http.Request) components.Status {
	u, err := url.Parse(r.Header.Get("HX-Current-URL"))
	if err != nil {
		return ""
	}
	return components.Status(u.Query().Get("status"))
}
