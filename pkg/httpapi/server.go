// Package httpapi serves the menu form, PDF downloads and the JSON/CSV audit endpoints.
package httpapi

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"menugen/pkg/classify"
	"menugen/pkg/config"
	"menugen/pkg/inventory"
	"menugen/pkg/menu"
	"menugen/pkg/report"
	"menugen/pkg/version"
)

//go:embed public_html/index.gohtml
var uiFS embed.FS

// fetchTimeout bounds one feed download inside a request.
const fetchTimeout = 30 * time.Second

// Font size bounds accepted from the form.
const (
	MinFontSize = 6
	MaxFontSize = 24
)

// Inventory is the part of inventory.Service the server needs.
type Inventory interface {
	Snapshot(ctx context.Context, storeID, line string) (inventory.Snapshot, error)
	Stores() []config.Store
}

// Server wires HTTP endpoints to the inventory service and the menu composer.
type Server struct {
	inventory Inventory
	composer  *menu.Composer
	engine    *classify.Engine
	page      *template.Template
	logger    *zap.Logger
}

// New parses the form template once.
func New(inv Inventory, composer *menu.Composer, engine *classify.Engine, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(uiFS, "public_html/index.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		inventory: inv,
		composer:  composer,
		engine:    engine,
		page:      tmpl,
		logger:    logger,
	}, nil
}

// Handler exposes the mux wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", s.formHandler())
	mux.Handle("/generate", s.generateEndpoint())
	mux.Handle("/api/stores", s.storesEndpoint())
	mux.Handle("/api/items", s.itemsEndpoint())
	mux.Handle("/healthz", s.healthEndpoint())
	return logRequests(s.logger, mux)
}

type variantOption struct {
	Value string
	Label string
}

// formHandler renders the store and menu type selection form.
func (s *Server) formHandler() http.Handler {
	type viewData struct {
		Stores      []config.Store
		Variants    []variantOption
		MinFontSize int
		MaxFontSize int
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		data := viewData{
			Stores:      s.inventory.Stores(),
			MinFontSize: MinFontSize,
			MaxFontSize: MaxFontSize,
		}
		for _, v := range menu.Variants() {
			data.Variants = append(data.Variants, variantOption{Value: string(v), Label: variantLabel(v)})
		}
		var buf bytes.Buffer
		if err := s.page.Execute(&buf, data); err != nil {
			s.logger.Error("form render failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
}

// generateEndpoint fetches the selected feed and returns the rendered menu as an attachment.
func (s *Server) generateEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			s.respondError(w, "invalid form", http.StatusBadRequest)
			return
		}
		payload := generatePayload{
			Store:       r.PostForm.Get("store"),
			MenuType:    r.PostForm.Get("menu_type"),
			FontSizeRaw: r.PostForm.Get("font_size"),
		}
		if err := payload.Validate(); err != nil {
			s.logger.Info("generate rejected", zap.Error(err))
			s.respondError(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
		defer cancel()

		snap, err := s.inventory.Snapshot(ctx, payload.Store, payload.Variant.Line())
		if err != nil {
			s.respondError(w, err.Error(), statusFor(err))
			return
		}

		pdf, err := s.composer.Generate(payload.Variant, snap.Items, menu.Options{
			FontSize: payload.FontSize,
			StoreKey: snap.Store.DiscountKey,
		})
		if err != nil {
			s.logger.Error("menu generation failed",
				zap.String("store", snap.Store.ID),
				zap.String("menu", string(payload.Variant)),
				zap.Error(err))
			s.respondError(w, "failed to generate menu", http.StatusInternalServerError)
			return
		}
		if len(pdf) == 0 {
			s.respondError(w, fmt.Sprintf("No items found for the %s menu at %s", variantLabel(payload.Variant), snap.Store.Name), http.StatusNotFound)
			return
		}

		s.logger.Info("menu generated",
			zap.String("store", snap.Store.ID),
			zap.String("menu", string(payload.Variant)),
			zap.Int("items", len(snap.Items)),
			zap.Int("bytes", len(pdf)))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Variant.FileName(snap.Store.ID)))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.Write(pdf)
	})
}

// storesEndpoint lists configured stores and the lines they have feeds for.
func (s *Server) storesEndpoint() http.Handler {
	type storeResponse struct {
		ID    string   `json:"id"`
		Name  string   `json:"name"`
		Lines []string `json:"lines"`
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		stores := s.inventory.Stores()
		response := make([]storeResponse, 0, len(stores))
		for _, store := range stores {
			entry := storeResponse{ID: store.ID, Name: store.Name, Lines: []string{}}
			for _, line := range config.Lines {
				if store.Feeds[line] != "" {
					entry.Lines = append(entry.Lines, line)
				}
			}
			response = append(response, entry)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

// itemsEndpoint reports how every item of a store's line was classified.
func (s *Server) itemsEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		storeID := strings.TrimSpace(q.Get("store"))
		line := strings.ToLower(strings.TrimSpace(q.Get("line")))
		format := strings.ToLower(strings.TrimSpace(q.Get("format")))
		if storeID == "" || line == "" {
			s.respondError(w, "store and line are required", http.StatusBadRequest)
			return
		}
		if format != "" && format != "json" && format != "csv" {
			s.respondError(w, "format must be json or csv", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
		defer cancel()

		snap, err := s.inventory.Snapshot(ctx, storeID, line)
		if err != nil {
			s.respondError(w, err.Error(), statusFor(err))
			return
		}

		rows := report.Build(s.engine, line, snap.Items, snap.Store.DiscountKey)
		var buf bytes.Buffer
		if err := report.Write(&buf, format, rows); err != nil {
			s.logger.Error("report failed", zap.Error(err))
			s.respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if format == "csv" {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Store.ID+"_"+line+"_items.csv"))
		} else {
			w.Header().Set("Content-Type", "application/json")
		}
		w.Write(buf.Bytes())
	})
}

func (s *Server) healthEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": version.Version()})
	})
}

// respondError keeps JSON formatting consistent across endpoints.
func (s *Server) respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// statusFor maps inventory failures to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrUnknownStore), errors.Is(err, inventory.ErrNoFeed), errors.Is(err, inventory.ErrNoToken):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// generatePayload keeps form parsing separate from the composer.
type generatePayload struct {
	Store       string
	MenuType    string
	FontSizeRaw string
	Variant     menu.Variant
	FontSize    float64
}

// Validate parses the menu type and optional font size.
func (p *generatePayload) Validate() error {
	p.Store = strings.TrimSpace(p.Store)
	if p.Store == "" {
		return errors.New("store is required")
	}
	v, err := menu.ParseVariant(p.MenuType)
	if err != nil {
		return errors.New("invalid menu type selected")
	}
	p.Variant = v

	raw := strings.TrimSpace(p.FontSizeRaw)
	if raw == "" {
		return nil
	}
	size, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid font_size: %w", err)
	}
	if size < MinFontSize || size > MaxFontSize {
		return fmt.Errorf("font_size must be between %d and %d", MinFontSize, MaxFontSize)
	}
	p.FontSize = size
	return nil
}

// variantLabel is the human name of a menu type, e.g. "Preroll (condensed)".
func variantLabel(v menu.Variant) string {
	line := v.Line()
	label := strings.ToUpper(line[:1]) + line[1:]
	if v.Condensed() {
		label += " (condensed)"
	}
	return label
}
