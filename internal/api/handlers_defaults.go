// handlers_defaults.go - UI defaults handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docsight/backend/internal/config"
)

// DefaultsHandlerImpl implements the DefaultsHandler interface
type DefaultsHandlerImpl struct {
	cfg         *config.AppConfig
	configError error
}

// NewDefaultsHandler creates a new defaults handler instance
func NewDefaultsHandler(cfg *config.AppConfig, configError error) DefaultsHandler {
	return &DefaultsHandlerImpl{cfg: cfg, configError: configError}
}

// sliderRange describes one sampling-parameter slider.
type sliderRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

type defaultsResponse struct {
	Prompt      string                 `json:"prompt"`
	ModelID     string                 `json:"modelId"`
	Sliders     map[string]sliderRange `json:"sliders"`
	ConfigError string                 `json:"configError,omitempty"`
}

// HandleGetDefaults returns the default prompt, model, and slider
// ranges so the frontend renders from one source of truth. A missing
// bucket configuration is surfaced here so the UI can show it before
// any analyze attempt.
func (h *DefaultsHandlerImpl) HandleGetDefaults(c echo.Context) error {
	a := h.cfg.Analysis

	resp := defaultsResponse{
		Prompt:  a.DefaultPrompt,
		ModelID: a.ModelID,
		Sliders: map[string]sliderRange{
			"maxTokens":   {Min: 100, Max: 2000, Step: 100, Default: float64(a.DefaultMaxNewTokens)},
			"temperature": {Min: 0.0, Max: 1.0, Step: 0.1, Default: a.DefaultTemperature},
			"topP":        {Min: 0.0, Max: 1.0, Step: 0.1, Default: a.DefaultTopP},
			"topK":        {Min: 1, Max: 100, Step: 1, Default: float64(a.DefaultTopK)},
		},
	}
	if h.configError != nil {
		resp.ConfigError = h.configError.Error()
	}

	return c.JSON(http.StatusOK, resp)
}
