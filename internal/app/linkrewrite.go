package app

import (
	"regexp"
)

// courseAnchor captures the slug, an optional query or fragment, and the link text.
var courseAnchor = regexp.MustCompile(`(?s)<a href="` + CoursesRoute + `/([a-z0-9-]+)/?([?#][^"]*)?"[^>]*>(.*?)</a>`)

// markMissingCourseLinks turns anchors to course pages that do not exist into
// inert spans so unpublished courses are not linked.
func markMissingCourseLinks(content string, known map[string]struct{}) string {
	if known == nil {
		return content
	}

	return courseAnchor.ReplaceAllStringFunc(content, func(match string) string {
		sub := courseAnchor.FindStringSubmatch(match)
		if len(sub) != 4 {
			return match
		}
		slug, suffix, text := sub[1], sub[2], sub[3]
		if _, ok := known[slug]; ok {
			return match
		}
		return `<span class="curso-pendiente" data-href="` + CoursePath(slug) + suffix + `">` + text + `</span>`
	})
}

func slugSet(courses []CourseLink) map[string]struct{} {
	set := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		set[c.Slug] = struct{}{}
	}
	return set
}
