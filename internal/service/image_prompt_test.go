package service

import (
	"errors"
	"strings"
	"testing"

	"studentia/internal/model"
	"studentia/internal/util"
)

func validImageOptions() model.ImageOptions {
	return model.ImageOptions{
		Prompt:   "A medieval library filled with glowing runes",
		Style:    "Digital Painting",
		Medium:   "Oil Painting",
		Lighting: "Cinematic",
		Mood:     "Epic",
	}
}

func TestComposeImagePrompt(t *testing.T) {
	prompt, err := ComposeImagePrompt(validImageOptions())
	if err != nil {
		t.Fatalf("ComposeImagePrompt: %v", err)
	}

	want := "Create an image in digital painting style using a oil painting medium.\n" +
		"The lighting should be cinematic and the overall mood should feel epic.\n" +
		"Scene: A medieval library filled with glowing runes"
	if prompt != want {
		t.Errorf("prompt =\n%s\nwant\n%s", prompt, want)
	}
}

func TestComposeImagePromptRejectsEmptyScene(t *testing.T) {
	opts := validImageOptions()
	opts.Prompt = "   \n"
	if _, err := ComposeImagePrompt(opts); !errors.Is(err, util.ErrEmptyScene) {
		t.Errorf("err = %v, want ErrEmptyScene", err)
	}
}

func TestComposeImagePromptRejectsUnknownOption(t *testing.T) {
	opts := validImageOptions()
	opts.Mood = "Grumpy"
	_, err := ComposeImagePrompt(opts)
	if !errors.Is(err, util.ErrInvalidOption) {
		t.Fatalf("err = %v, want ErrInvalidOption", err)
	}
	if !strings.Contains(err.Error(), "mood") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestResolveImageSize(t *testing.T) {
	cases := map[string]string{
		"1024x1792 (portrait)":  "1024x1792",
		"1792x1024 (landscape)": "1792x1024",
		"1024x1024":             "1024x1024",
		"1792x1024":             "1792x1024",
		"":                      "1024x1024",
	}
	for label, want := range cases {
		got, err := ResolveImageSize(label)
		if err != nil {
			t.Errorf("ResolveImageSize(%q): %v", label, err)
			continue
		}
		if got != want {
			t.Errorf("ResolveImageSize(%q) = %q, want %q", label, got, want)
		}
	}

	if _, err := ResolveImageSize("512x512"); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("unsupported size err = %v, want ErrInvalidOption", err)
	}
}
