package content

type Category string

const (
	CategoryBlog          Category = "blog"
	CategoryHub           Category = "hub"
	CategorySpoke         Category = "spoke"
	CategoryGuide         Category = "guide"
	CategoryDocumentation Category = "documentation"
	CategoryFAQ           Category = "faq"
)

// Categories lists every known tag in declaration order.
var Categories = []Category{
	CategoryBlog,
	CategoryHub,
	CategorySpoke,
	CategoryGuide,
	CategoryDocumentation,
	CategoryFAQ,
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) String() string { return string(c) }

// CategoryStrings returns the tags as plain strings, in order.
func CategoryStrings() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = string(c)
	}
	return out
}

type TwitterCard string

const (
	TwitterSummary      TwitterCard = "summary"
	TwitterSummaryLarge TwitterCard = "summary_large_image"
	TwitterApp          TwitterCard = "app"
	TwitterPlayer       TwitterCard = "player"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)
