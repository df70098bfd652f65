package presets

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/models"
)

//go:embed presets.yaml
var presetsYAML []byte

type file struct {
	Platforms map[models.Platform]dto.WidgetInput `yaml:"platforms"`
}

var (
	loadOnce sync.Once
	loaded   map[models.Platform]dto.WidgetInput
	loadErr  error
)

// Load returns the default configuration of every platform.
func Load() (map[models.Platform]dto.WidgetInput, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parse(presetsYAML)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make(map[models.Platform]dto.WidgetInput, len(loaded))
	for p, in := range loaded {
		out[p] = clone(in)
	}
	return out, nil
}

// Get returns the default configuration for one platform. The second result
// is false for unknown platforms.
func Get(p models.Platform) (dto.WidgetInput, bool, error) {
	all, err := Load()
	if err != nil {
		return dto.WidgetInput{}, false, err
	}
	in, ok := all[p]
	return in, ok, nil
}

func parse(raw []byte) (map[models.Platform]dto.WidgetInput, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	for _, p := range models.Platforms {
		in, ok := f.Platforms[p]
		if !ok {
			return nil, fmt.Errorf("parse presets: missing platform %s", p)
		}
		if in.Platform != string(p) {
			return nil, fmt.Errorf("parse presets: %s declares platform %q", p, in.Platform)
		}
	}
	return f.Platforms, nil
}

// clone copies the pointer fields so callers cannot mutate the cached presets.
func clone(in dto.WidgetInput) dto.WidgetInput {
	if in.Bubble.OffsetX != nil {
		v := *in.Bubble.OffsetX
		in.Bubble.OffsetX = &v
	}
	if in.Bubble.OffsetY != nil {
		v := *in.Bubble.OffsetY
		in.Bubble.OffsetY = &v
	}
	if in.Bubble.Shadow != nil {
		v := *in.Bubble.Shadow
		in.Bubble.Shadow = &v
	}
	return in
}
