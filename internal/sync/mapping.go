package sync

import (
	"fmt"
	"strings"

	"kozsync/internal/logger"
)

const catalogPageSize = 100

// CategoryMapping indexes the remote category tree. It is rebuilt from the
// store at the start of every import or push run; there is no invalidation.
type CategoryMapping struct {
	bySlugKey map[string]int64 // "{parent}:{slug}"
	byNameKey map[string]int64 // "{parent}:{lowercased name}"
	bySlug    map[string]int64 // slug only, for sub-category resolution
	byName    map[string]int64 // lowercased name only
}

// BuildCategoryMapping enumerates the whole remote category list page by page
// and indexes it by slug and name.
func BuildCategoryMapping(catalog Catalog) (*CategoryMapping, error) {
	m := &CategoryMapping{
		bySlugKey: make(map[string]int64),
		byNameKey: make(map[string]int64),
		bySlug:    make(map[string]int64),
		byName:    make(map[string]int64),
	}

	page := 1
	for {
		categories, err := catalog.GetCategories(page, catalogPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list remote categories (page %d): %w", page, err)
		}

		for _, category := range categories {
			m.Add(category.Parent, category.Slug, category.Name, category.ID)
		}

		if len(categories) < catalogPageSize {
			break
		}
		page++
	}

	return m, nil
}

func (m *CategoryMapping) Add(parent int64, slug, name string, id int64) {
	if slug != "" {
		m.bySlugKey[fmt.Sprintf("%d:%s", parent, strings.ToLower(slug))] = id
		m.bySlug[strings.ToLower(slug)] = id
	}
	if name != "" {
		m.byNameKey[fmt.Sprintf("%d:%s", parent, strings.ToLower(name))] = id
		m.byName[strings.ToLower(name)] = id
	}
}

// Lookup resolves a category by exact parent+slug key.
func (m *CategoryMapping) Lookup(parent int64, slug string) (int64, bool) {
	id, ok := m.bySlugKey[fmt.Sprintf("%d:%s", parent, strings.ToLower(slug))]
	return id, ok
}

// LookupTopLevelFuzzy scans top-level keys for one containing the candidate
// slug as a substring. Intentionally imprecise: naming drift in feeds keeps
// creating near-duplicate top-level categories otherwise.
func (m *CategoryMapping) LookupTopLevelFuzzy(slug string) (int64, bool) {
	needle := strings.ToLower(slug)
	for key, id := range m.bySlugKey {
		if strings.HasPrefix(key, "0:") && strings.Contains(key[2:], needle) {
			return id, true
		}
	}
	return 0, false
}

// ResolveIDs resolves the staged main/sub category names to remote ids.
// The main category matches by name only; the sub-category falls back to a
// slug match. Unmatched names contribute nothing.
func (m *CategoryMapping) ResolveIDs(mainCategory, subCategory string) []int64 {
	ids := make([]int64, 0, 2)
	seen := make(map[int64]bool)

	if mainCategory != "" {
		if id, ok := m.byName[strings.ToLower(mainCategory)]; ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}

	if subCategory != "" {
		id, ok := m.byName[strings.ToLower(subCategory)]
		if !ok {
			id, ok = m.bySlug[Slugify(subCategory)]
		}
		if ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}

	return ids
}

// Brand attribute names accepted on the remote store.
var brandAttributeNames = map[string]bool{
	"marka":    true,
	"brand":    true,
	"pa_marka": true,
	"pa_brand": true,
}

// BrandMapping holds the remote brand attribute and its term index.
// AttributeID stays zero when the store defines no brand attribute; brand
// handling then degrades to metadata plus a local attribute.
type BrandMapping struct {
	AttributeID int64
	termsByName map[string]int64
	termsBySlug map[string]int64
	termNames   map[int64]string
}

// BuildBrandMapping finds the remote brand attribute and indexes its terms.
// A store without a brand attribute is a warning, not an error.
func BuildBrandMapping(catalog Catalog, log *logger.Logger) (*BrandMapping, error) {
	m := &BrandMapping{
		termsByName: make(map[string]int64),
		termsBySlug: make(map[string]int64),
		termNames:   make(map[int64]string),
	}

	attributes, err := catalog.GetAttributes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remote attributes: %w", err)
	}

	for _, attribute := range attributes {
		if brandAttributeNames[strings.ToLower(attribute.Name)] || brandAttributeNames[strings.ToLower(attribute.Slug)] {
			m.AttributeID = attribute.ID
			break
		}
	}

	if m.AttributeID == 0 {
		log.Warn("no brand attribute found on remote store, brand will be attached as metadata only")
		return m, nil
	}

	page := 1
	for {
		terms, err := catalog.GetAttributeTerms(m.AttributeID, page, catalogPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list brand terms (page %d): %w", page, err)
		}

		for _, term := range terms {
			m.termsByName[strings.ToLower(term.Name)] = term.ID
			m.termsBySlug[strings.ToLower(term.Slug)] = term.ID
			m.termNames[term.ID] = term.Name
		}

		if len(terms) < catalogPageSize {
			break
		}
		page++
	}

	return m, nil
}

// ResolveTerm maps a feed brand string to an existing remote term. The second
// return is the term's canonical name as stored remotely.
func (m *BrandMapping) ResolveTerm(brand string) (int64, string, bool) {
	id, ok := m.termsByName[strings.ToLower(brand)]
	if !ok {
		id, ok = m.termsBySlug[Slugify(brand)]
	}
	if !ok {
		return 0, "", false
	}
	return id, m.termNames[id], true
}
