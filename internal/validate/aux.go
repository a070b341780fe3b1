package validate

import (
	"contentkit/internal/domain/content"
	"contentkit/internal/schema"
)

func validateAux[T any](t schema.Type, raw any, decode func(map[string]any) T) (res Result[T]) {
	defer guard(&res, raw)

	v := schema.Normalize(raw)
	if issues := schema.Check(t, v); len(issues) > 0 {
		return fail[T](issues)
	}
	m, _ := schema.AsMap(v)
	return ok(decode(m))
}

func ValidateFrontmatter(raw any) Result[content.Frontmatter] {
	return validateAux(schema.Frontmatter, raw, func(m map[string]any) content.Frontmatter {
		return content.Frontmatter(m).Clone()
	})
}

func ValidateContentFile(raw any) Result[content.ContentFile] {
	return validateAux(schema.ContentFile, raw, schema.DecodeContentFile)
}

func ValidateContentListItem(raw any) Result[content.ListItem] {
	return validateAux(schema.ListItem, raw, schema.DecodeListItem)
}

func ValidateProcessedContent(raw any) Result[content.ProcessedContent] {
	return validateAux(schema.ProcessedContent, raw, schema.DecodeProcessedContent)
}

func ValidateContentNavigation(raw any) Result[content.Navigation] {
	return validateAux(schema.Navigation, raw, schema.DecodeNavigation)
}

func ValidateContentStats(raw any) Result[content.Stats] {
	return validateAux(schema.Stats, raw, schema.DecodeStats)
}
