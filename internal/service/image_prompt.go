package service

import (
	"fmt"
	"strings"
	"studentia/internal/model"
	"studentia/internal/util"

	"github.com/samber/lo"
)

// ComposeImagePrompt 将风格属性代入固定模板，再附上用户的场景描述
func ComposeImagePrompt(opts model.ImageOptions) (string, error) {
	scene := strings.TrimSpace(opts.Prompt)
	if scene == "" {
		return "", util.ErrEmptyScene
	}

	checks := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"style", opts.Style, model.ImageStyles},
		{"medium", opts.Medium, model.ImageMediums},
		{"lighting", opts.Lighting, model.ImageLightings},
		{"mood", opts.Mood, model.ImageMoods},
	}
	for _, c := range checks {
		if !lo.Contains(c.allowed, c.value) {
			return "", fmt.Errorf("%w: %s %q", util.ErrInvalidOption, c.name, c.value)
		}
	}

	prompt := fmt.Sprintf(
		"Create an image in %s style using a %s medium.\nThe lighting should be %s and the overall mood should feel %s.\nScene: %s",
		strings.ToLower(opts.Style),
		strings.ToLower(opts.Medium),
		strings.ToLower(opts.Lighting),
		strings.ToLower(opts.Mood),
		opts.Prompt,
	)
	return strings.TrimSpace(prompt), nil
}

// ResolveImageSize 将分辨率展示标签映射为接口取值，空值使用默认尺寸
func ResolveImageSize(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.DefaultImageSize, nil
	}
	res, ok := lo.Find(model.ImageResolutions, func(r model.ImageResolution) bool {
		return r.Label == label || r.Size == label
	})
	if !ok {
		return "", fmt.Errorf("%w: resolution %q", util.ErrInvalidOption, label)
	}
	return res.Size, nil
}
