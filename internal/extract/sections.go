package extract

// SectionMap maps a section key to the text extracted under its heading.
// A key that is present with an empty value means the heading was found but
// had no content before the next heading.
type SectionMap map[string]string

// ExtractSections walks the document's headings in order, classifies each
// one, and pairs it with the text that follows it. The first heading to
// claim a key wins; later headings classifying to the same key are ignored.
//
// Every section stops at the next heading of any level, except
// non_accessible, which deliberately consumes everything to the end of the
// document: remediation detail on these pages is routinely buried under
// further sub-headings.
func ExtractSections(doc *Document) SectionMap {
	sections := SectionMap{}

	for _, h := range doc.Headings() {
		key, ok := ClassifyHeading(nodeText(h))
		if !ok {
			continue
		}
		if _, seen := sections[key]; seen {
			continue
		}
		sections[key] = doc.textAfter(h, key != SectionNonAccessible)
	}

	return sections
}
