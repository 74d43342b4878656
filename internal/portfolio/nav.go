package portfolio

import (
	"fmt"
	"strings"
)

// Anchor ids used when the document leaves a section id unset. They match the
// ids carried by the default host page.
const (
	DefaultHeroSection    = "system-architecture"
	DefaultSkillsSection  = "skill-set"
	DefaultContactSection = "contact"
)

// NormalizeHashTarget turns a section id or anchor into a hash anchor.
func NormalizeHashTarget(target string) string {
	if target == "" {
		return "#"
	}
	if strings.HasPrefix(target, "#") {
		return target
	}
	return "#" + target
}

// TopPanelID is the anchor id for the index-th top panel.
func TopPanelID(p TopPanel, index int) string {
	if p.SectionID != "" {
		return p.SectionID
	}
	return fmt.Sprintf("top-panel-%d", index+1)
}

// NavItems returns the configured navigation, or one derived from the
// sections when none is configured. Targets are always hash anchors.
func (d *Document) NavItems() []NavItem {
	if len(d.Navigation) > 0 {
		items := make([]NavItem, 0, len(d.Navigation))
		for _, item := range d.Navigation {
			items = append(items, NavItem{Label: item.Label, Target: NormalizeHashTarget(item.Target)})
		}
		return items
	}
	return d.DefaultNavigation()
}

// DefaultNavigation derives navigation in page order: hero, service sections,
// top panels, skills, contact.
func (d *Document) DefaultNavigation() []NavItem {
	var items []NavItem

	items = append(items, NavItem{
		Label:  firstNonEmpty(d.Hero.PanelTitle, "SYSTEM_ARCHITECTURE"),
		Target: NormalizeHashTarget(firstNonEmpty(d.Hero.SectionID, DefaultHeroSection)),
	})

	for _, s := range d.ServiceSections {
		items = append(items, NavItem{
			Label:  firstNonEmpty(s.NavLabel, s.Title, s.ID, "SERVICES"),
			Target: NormalizeHashTarget(s.ID),
		})
	}

	for i, p := range d.TopPanels {
		items = append(items, NavItem{
			Label:  firstNonEmpty(p.NavLabel, p.PanelTitle, fmt.Sprintf("TOP_PANEL_%d", i+1)),
			Target: NormalizeHashTarget(TopPanelID(p, i)),
		})
	}

	items = append(items, NavItem{
		Label:  firstNonEmpty(d.Skills.PanelTitle, "SKILL_SET"),
		Target: NormalizeHashTarget(firstNonEmpty(d.Skills.SectionID, DefaultSkillsSection)),
	})
	items = append(items, NavItem{
		Label:  firstNonEmpty(d.Contact.PanelTitle, "CONTACT"),
		Target: NormalizeHashTarget(firstNonEmpty(d.Contact.SectionID, DefaultContactSection)),
	})
	return items
}
