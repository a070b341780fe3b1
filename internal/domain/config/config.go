package config

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/transform"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "contentkit.yaml"

type Config struct {
	Content   ContentConfig            `yaml:"content"`
	Site      SiteConfig               `yaml:"site"`
	Index     IndexConfig              `yaml:"index"`
	Serve     ServeConfig              `yaml:"serve"`
	Log       LogConfig                `yaml:"log"`
	Transform transform.PartialOptions `yaml:"transform"`
}

// ContentConfig maps each category to the directory holding its files.
type ContentConfig struct {
	Dirs map[content.Category]string `yaml:"dirs"`
	// Legacy routes files through the legacy transform instead of plain
	// validation.
	Legacy bool `yaml:"legacy"`
}

type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

type IndexConfig struct {
	// Path of the bbolt file. Empty disables indexing.
	Path string `yaml:"path"`
}

type ServeConfig struct {
	Addr     string        `yaml:"addr"`
	Debounce time.Duration `yaml:"debounce"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Content: ContentConfig{
			Dirs: map[content.Category]string{
				content.CategoryBlog:          "app/content/blog",
				content.CategoryGuide:         "app/content/guides",
				content.CategoryHub:           "app/content/hub",
				content.CategorySpoke:         "app/content/spokes",
				content.CategoryDocumentation: "app/content/docs",
				content.CategoryFAQ:           "app/content/faq",
			},
		},
		Site:  SiteConfig{BaseURL: "https://testero.ai"},
		Index: IndexConfig{Path: ".contentkit/index.db"},
		Serve: ServeConfig{Addr: ":8080", Debounce: 300 * time.Millisecond},
		Log:   LogConfig{Level: "info"},
	}
}

// Options resolves the transform options against their defaults.
func (c Config) Options() transform.Options {
	return transform.DefaultOptions().Merge(c.Transform)
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if len(c.Content.Dirs) == 0 {
		ve.Add("content.dirs", "must not be empty")
	}
	for cat, dir := range c.Content.Dirs {
		if !cat.Valid() {
			ve.Add("content.dirs."+string(cat), "unknown content type")
			continue
		}
		if strings.TrimSpace(dir) == "" {
			ve.Add("content.dirs."+string(cat), "must not be empty")
		}
	}

	if strings.TrimSpace(c.Site.BaseURL) == "" {
		ve.Add("site.base_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.BaseURL) {
		ve.Add("site.base_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Serve.Addr) == "" {
		ve.Add("serve.addr", "must not be empty")
	}
	if c.Serve.Debounce < 0 {
		ve.Add("serve.debounce", "must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		ve.Add("log.level", "must be one of debug, info, warn, error")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// OrderedDirs returns the configured categories in declaration order.
func (c Config) OrderedDirs() []content.Category {
	out := make([]content.Category, 0, len(c.Content.Dirs))
	for _, cat := range content.Categories {
		if _, ok := c.Content.Dirs[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// fields present in the file override the defaults, the rest are kept
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
