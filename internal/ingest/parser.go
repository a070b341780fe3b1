package ingest

import (
	"bytes"
	"contentkit/internal/domain/content"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"gopkg.in/yaml.v3"
	"path/filepath"
	"strings"
)

var ErrNoFrontMatter = errors.New("no front matter found")
var ErrInvalidFrontMatter = errors.New("invalid front matter")

// ParseFrontMatter splits raw into its YAML header and body. A file without
// a header yields ErrNoFrontMatter together with the whole file as body.
func ParseFrontMatter(raw []byte) (content.Frontmatter, []byte, error) {
	// normalize line endings
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))
	norm = bytes.TrimLeft(norm, "\uFEFF \t\n")

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(norm, []byte(sepLine)) {
		return content.Frontmatter{}, bytes.TrimSpace(norm), ErrNoFrontMatter
	}

	rest := norm[len(sepLine):]

	var yamlPart, bodyPart []byte

	if bytes.HasPrefix(rest, []byte(sepLine)) {
		// "---\n---\n": empty header
		bodyPart = rest[len(sepLine):]
	} else if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
		yamlPart = parts[0]
		bodyPart = parts[1]
	} else if bytes.HasSuffix(bytes.TrimRight(rest, "\n"), []byte("\n"+sep)) {
		trimmed := bytes.TrimRight(rest, "\n")
		yamlPart = trimmed[:len(trimmed)-len("\n"+sep)]
	} else if bytes.Equal(bytes.TrimSpace(rest), []byte(sep)) {
		yamlPart = nil
	} else {
		return nil, nil, ErrInvalidFrontMatter
	}

	fm := content.Frontmatter{}
	if len(bytes.TrimSpace(yamlPart)) > 0 {
		if err := yaml.Unmarshal(yamlPart, &fm); err != nil {
			return nil, nil, errors.Join(ErrInvalidFrontMatter, err)
		}
	}
	if fm == nil {
		fm = content.Frontmatter{}
	}
	return fm, bytes.TrimSpace(bodyPart), nil
}

// ResolveSlug prefers an explicit front matter slug and falls back to the
// file name.
func ResolveSlug(fm content.Frontmatter, path string) string {
	if s, ok := fm.String("slug"); ok && strings.TrimSpace(s) != "" {
		return s
	}
	base := filepath.Base(path)
	return slugify(strings.TrimSuffix(base, filepath.Ext(base)))
}

// slugify lowercases s and replaces every byte outside [a-z0-9-] with '-'.
// Runs are not collapsed so distinct names stay distinct.
func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Prepare fills what a file's location implies and turns date strings into
// dates, leaving everything else for the validator to judge.
func Prepare(f content.ContentFile) content.Frontmatter {
	fm := f.Frontmatter.Clone()
	fillBlank(fm, "slug", f.Slug)
	fillBlank(fm, "category", string(f.Type))
	return CoerceDates(fm)
}

// fillBlank sets key when it is missing, null or an empty string. Values of
// any other type stay so the validator can report them.
func fillBlank(fm content.Frontmatter, key, v string) {
	switch cur := fm[key].(type) {
	case nil:
	case string:
		if cur != "" {
			return
		}
	default:
		return
	}
	fm[key] = v
}

// CoerceDates converts parseable publishedAt and updatedAt strings into
// times and fills publishedAt from a legacy date string. fm is modified in
// place and returned.
func CoerceDates(fm content.Frontmatter) content.Frontmatter {
	for _, key := range []string{"publishedAt", "updatedAt"} {
		if s, ok := fm[key].(string); ok {
			if t, parsed := content.ParseDate(s); parsed {
				fm[key] = t
			}
		}
	}
	if !fm.Has("publishedAt") {
		if s, ok := fm["date"].(string); ok {
			if t, parsed := content.ParseDate(s); parsed {
				fm["publishedAt"] = t
			}
		}
	}
	return fm
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
