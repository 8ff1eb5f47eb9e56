package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/shelfmap/internal/server/response"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

// Preferences is the stored display settings with their toggle labels.
type Preferences struct {
	View       preferences.ViewMode `json:"view"`
	Theme      preferences.Theme    `json:"theme"`
	ViewLabel  string               `json:"view_label"`
	ThemeLabel string               `json:"theme_label"`
}

// PreferencesUpdate is the PUT /preferences body. Empty fields are left
// unchanged.
type PreferencesUpdate struct {
	View  string `json:"view,omitempty"`
	Theme string `json:"theme,omitempty"`
}

func toPreferences(s preferences.Snapshot) Preferences {
	return Preferences{
		View:       s.View,
		Theme:      s.Theme,
		ViewLabel:  preferences.ViewLabel(s.View),
		ThemeLabel: preferences.ThemeLabel(s.Theme),
	}
}

// HandleGetPreferences handles GET /api/v1/preferences.
// @Summary Get preferences
// @Description Stored view mode and theme, with defaults applied
// @Tags preferences
// @Produce json
// @Success 200 {object} response.Response{data=Preferences}
// @Router /api/v1/preferences [get].
func (h *Handlers) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	store, err := h.app.Preferences(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	snap, err := preferences.Load(r.Context(), store, h.app.PrefersDark())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, toPreferences(snap))
}

// HandlePutPreferences handles PUT /api/v1/preferences.
// @Summary Update preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body PreferencesUpdate true "Settings to change"
// @Success 200 {object} response.Response{data=Preferences}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/preferences [put].
func (h *Handlers) HandlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var req PreferencesUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	var view preferences.ViewMode
	var theme preferences.Theme
	if req.View != "" {
		v, ok := preferences.ParseViewMode(req.View)
		if !ok {
			response.ErrorFromType(w, errors.NewValidationError("view", req.View, "must be grid or list"))
			return
		}
		view = v
	}
	if req.Theme != "" {
		t, ok := preferences.ParseTheme(req.Theme)
		if !ok {
			response.ErrorFromType(w, errors.NewValidationError("theme", req.Theme, "must be light or dark"))
			return
		}
		theme = t
	}

	ctx := r.Context()
	store, err := h.app.Preferences(ctx)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if view != "" {
		if err := preferences.NewViewController(store).Set(ctx, view); err != nil {
			response.ErrorFromType(w, err)
			return
		}
	}
	if theme != "" {
		if err := preferences.NewThemeController(store).Set(ctx, theme); err != nil {
			response.ErrorFromType(w, err)
			return
		}
	}
	h.HandleGetPreferences(w, r)
}

// HandleToggleTheme handles POST /api/v1/preferences/theme/toggle.
// @Summary Toggle theme
// @Tags preferences
// @Produce json
// @Success 200 {object} response.Response{data=Preferences}
// @Router /api/v1/preferences/theme/toggle [post].
func (h *Handlers) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store, err := h.app.Preferences(ctx)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	c := preferences.NewThemeController(store)
	if _, err := c.Init(ctx, h.app.PrefersDark()); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if _, err := c.Toggle(ctx); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.HandleGetPreferences(w, r)
}

// HandleToggleView handles POST /api/v1/preferences/view/toggle.
// @Summary Toggle view mode
// @Tags preferences
// @Produce json
// @Success 200 {object} response.Response{data=Preferences}
// @Router /api/v1/preferences/view/toggle [post].
func (h *Handlers) HandleToggleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store, err := h.app.Preferences(ctx)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	c := preferences.NewViewController(store)
	if _, err := c.Init(ctx); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if _, err := c.Toggle(ctx); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.HandleGetPreferences(w, r)
}
