package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formview/pkg/view"
)

// Choices are the render settings picked interactively.
type Choices struct {
	Mode       view.Mode
	Renderer   string
	Components []string
}

var modeOptions = []string{
	string(view.ModeConditional),
	string(view.ModeAll),
}

// Pick asks for the render mode, the renderer and, when components is not
// empty, the OpenAPI component schemas to include. defaults preselects the
// answers.
func Pick(ctx context.Context, driver Driver, renderers, components []string, defaults Choices) (Choices, error) {
	out := defaults

	modeIdx, err := driver.Select(ctx, SelectConfig{
		Message:      "Render mode",
		Options:      modeOptions,
		DefaultIndex: indexOf(modeOptions, string(defaults.Mode)),
		Help:         "conditional hides nodes whose x-ui-visible-if condition fails",
	})
	if err != nil {
		return Choices{}, err
	}
	if modeIdx < 0 || modeIdx >= len(modeOptions) {
		return Choices{}, fmt.Errorf("prompt: invalid mode selection %d", modeIdx)
	}
	out.Mode = view.Mode(modeOptions[modeIdx])

	if len(renderers) > 0 {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "Renderer",
			Options:      renderers,
			DefaultIndex: indexOf(renderers, defaults.Renderer),
		})
		if err != nil {
			return Choices{}, err
		}
		if idx < 0 || idx >= len(renderers) {
			return Choices{}, fmt.Errorf("prompt: invalid renderer selection %d", idx)
		}
		out.Renderer = renderers[idx]
	}

	if len(components) > 0 {
		indices, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  "Components",
			Options:  components,
			Defaults: indicesOf(components, defaults.Components),
			Help:     "leave empty to include every component schema",
			PageSize: 10,
		})
		if err != nil {
			return Choices{}, err
		}
		var picked []string
		for _, idx := range indices {
			if idx >= 0 && idx < len(components) {
				picked = append(picked, components[idx])
			}
		}
		out.Components = picked
	}

	return out, nil
}

// ConfirmOverwrite asks before replacing an existing output file.
func ConfirmOverwrite(ctx context.Context, driver Driver, path string) (bool, error) {
	return driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s exists. Overwrite?", path),
		Default: false,
	})
}
