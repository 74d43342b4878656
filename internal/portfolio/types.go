package portfolio

// Document is the declarative description of the whole page. It is decoded
// once, normalized, and then only read.
type Document struct {
	System          System            `yaml:"system,omitempty" json:"system"`
	Hero            Hero              `yaml:"hero,omitempty" json:"hero"`
	Navigation      []NavItem         `yaml:"navigation,omitempty" json:"navigation,omitempty"`
	TopPanels       []TopPanel        `yaml:"topPanels,omitempty" json:"topPanels,omitempty"`
	Skills          Skills            `yaml:"skills,omitempty" json:"skills"`
	ServiceSections []ServiceSection  `yaml:"serviceSections,omitempty" json:"serviceSections,omitempty"`
	Contact         Contact           `yaml:"contact,omitempty" json:"contact"`
	Mermaid         *MermaidSettings  `yaml:"mermaid,omitempty" json:"mermaid,omitempty"`
	Diagrams        map[string]string `yaml:"diagrams,omitempty" json:"diagrams,omitempty"`
}

// System holds page-wide labels.
type System struct {
	DocumentTitle string `yaml:"documentTitle,omitempty" json:"documentTitle,omitempty"`
	SystemName    string `yaml:"systemName,omitempty" json:"systemName,omitempty"`
}

// Hero is the lead panel with its diagram and metric lines.
type Hero struct {
	SectionID    string   `yaml:"sectionId,omitempty" json:"sectionId,omitempty"`
	PanelTitle   string   `yaml:"panelTitle,omitempty" json:"panelTitle,omitempty"`
	PanelUID     string   `yaml:"panelUid,omitempty" json:"panelUid,omitempty"`
	DiagramID    string   `yaml:"diagramId,omitempty" json:"diagramId,omitempty"`
	Metrics      []string `yaml:"metrics,omitempty" json:"metrics,omitempty"`
	DiagramNotes []string `yaml:"diagramNotes,omitempty" json:"diagramNotes,omitempty"`
	YouTubeURL   string   `yaml:"youtubeUrl,omitempty" json:"youtubeUrl,omitempty"`
	YouTubeID    string   `yaml:"youtubeId,omitempty" json:"youtubeId,omitempty"`
	Links        []Link   `yaml:"links,omitempty" json:"links,omitempty"`
}

// TopPanel is an additional diagram panel rendered into the top-panels slot.
type TopPanel struct {
	SectionID  string   `yaml:"sectionId,omitempty" json:"sectionId,omitempty"`
	PanelTitle string   `yaml:"panelTitle,omitempty" json:"panelTitle,omitempty"`
	PanelUID   string   `yaml:"panelUid,omitempty" json:"panelUid,omitempty"`
	PanelClass string   `yaml:"panelClass,omitempty" json:"panelClass,omitempty"`
	DiagramID  string   `yaml:"diagramId,omitempty" json:"diagramId,omitempty"`
	NavLabel   string   `yaml:"navLabel,omitempty" json:"navLabel,omitempty"`
	Metrics    []string `yaml:"metrics,omitempty" json:"metrics,omitempty"`
	YouTubeURL string   `yaml:"youtubeUrl,omitempty" json:"youtubeUrl,omitempty"`
	YouTubeID  string   `yaml:"youtubeId,omitempty" json:"youtubeId,omitempty"`
	Links      []Link   `yaml:"links,omitempty" json:"links,omitempty"`
}

// Skills is the skill grid panel.
type Skills struct {
	SectionID  string      `yaml:"sectionId,omitempty" json:"sectionId,omitempty"`
	PanelTitle string      `yaml:"panelTitle,omitempty" json:"panelTitle,omitempty"`
	PanelUID   string      `yaml:"panelUid,omitempty" json:"panelUid,omitempty"`
	Items      []SkillItem `yaml:"items,omitempty" json:"items,omitempty"`
}

// SkillItem is one category in the skill grid.
type SkillItem struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Stack string `yaml:"stack,omitempty" json:"stack,omitempty"`
}

// ServiceSection is a titled section of project cards arranged in groups.
type ServiceSection struct {
	ID               string  `yaml:"id,omitempty" json:"id,omitempty"`
	Title            string  `yaml:"title,omitempty" json:"title,omitempty"`
	NavLabel         string  `yaml:"navLabel,omitempty" json:"navLabel,omitempty"`
	Theme            string  `yaml:"theme,omitempty" json:"theme,omitempty"`
	CardVisualHeight string  `yaml:"cardVisualHeight,omitempty" json:"cardVisualHeight,omitempty"`
	CardClass        string  `yaml:"cardClass,omitempty" json:"cardClass,omitempty"`
	Groups           []Group `yaml:"groups,omitempty" json:"groups,omitempty"`
	// Cards is the legacy flat layout; Normalize folds it into a single group.
	Cards []Card `yaml:"cards,omitempty" json:"cards,omitempty"`
}

// Group is a run of cards under an optional divider.
type Group struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Desc  string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Cards []Card `yaml:"cards,omitempty" json:"cards,omitempty"`
}

// Card describes one project.
type Card struct {
	MermaidID    string   `yaml:"mermaidId,omitempty" json:"mermaidId,omitempty"`
	Title        string   `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle     string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Period       string   `yaml:"period,omitempty" json:"period,omitempty"`
	Overview     string   `yaml:"overview,omitempty" json:"overview,omitempty"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Role         string   `yaml:"role,omitempty" json:"role,omitempty"`
	StackSummary string   `yaml:"stackSummary,omitempty" json:"stackSummary,omitempty"`
	Skills       []string `yaml:"skills,omitempty" json:"skills,omitempty"`
	Highlights   []string `yaml:"highlights,omitempty" json:"highlights,omitempty"`
	Links        []Link   `yaml:"links,omitempty" json:"links,omitempty"`
	LearnMore    string   `yaml:"learnMore,omitempty" json:"learnMore,omitempty"`
	LinkLabel    string   `yaml:"linkLabel,omitempty" json:"linkLabel,omitempty"`
	YouTubeURL   string   `yaml:"youtubeUrl,omitempty" json:"youtubeUrl,omitempty"`
	YouTubeID    string   `yaml:"youtubeId,omitempty" json:"youtubeId,omitempty"`
	VisualHeight string   `yaml:"visualHeight,omitempty" json:"visualHeight,omitempty"`
	CardClass    string   `yaml:"cardClass,omitempty" json:"cardClass,omitempty"`
}

// Link is an outbound action on a card.
type Link struct {
	Label   string `yaml:"label,omitempty" json:"label,omitempty"`
	Href    string `yaml:"href,omitempty" json:"href,omitempty"`
	Variant string `yaml:"variant,omitempty" json:"variant,omitempty"`
}

// Contact is the closing panel with action buttons.
type Contact struct {
	SectionID   string   `yaml:"sectionId,omitempty" json:"sectionId,omitempty"`
	PanelTitle  string   `yaml:"panelTitle,omitempty" json:"panelTitle,omitempty"`
	PanelUID    string   `yaml:"panelUid,omitempty" json:"panelUid,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Actions     []Action `yaml:"actions,omitempty" json:"actions,omitempty"`
}

// Action is a contact button.
type Action struct {
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	Href  string `yaml:"href,omitempty" json:"href,omitempty"`
}

// NavItem is one header navigation entry.
type NavItem struct {
	Label  string `yaml:"label,omitempty" json:"label"`
	Target string `yaml:"target,omitempty" json:"target"`
}

// MermaidSettings overrides the diagram engine defaults.
type MermaidSettings struct {
	Theme         string             `yaml:"theme,omitempty" json:"theme,omitempty"`
	SecurityLevel string             `yaml:"securityLevel,omitempty" json:"securityLevel,omitempty"`
	FontFamily    string             `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	Flowchart     *FlowchartSettings `yaml:"flowchart,omitempty" json:"flowchart,omitempty"`
}

// FlowchartSettings are the flowchart-specific engine options. Pointer fields
// distinguish "unset" from an explicit false.
type FlowchartSettings struct {
	UseMaxWidth *bool  `yaml:"useMaxWidth,omitempty" json:"useMaxWidth,omitempty"`
	HTMLLabels  *bool  `yaml:"htmlLabels,omitempty" json:"htmlLabels,omitempty"`
	Curve       string `yaml:"curve,omitempty" json:"curve,omitempty"`
}

// VideoSource is the input to linked-video resolution for a diagram container.
type VideoSource struct {
	ID    string
	URL   string
	Hrefs []string
}

func hrefs(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Href)
	}
	return out
}

// Video returns the hero's linked-video inputs.
func (h Hero) Video() VideoSource {
	return VideoSource{ID: h.YouTubeID, URL: h.YouTubeURL, Hrefs: hrefs(h.Links)}
}

// Video returns the panel's linked-video inputs.
func (p TopPanel) Video() VideoSource {
	return VideoSource{ID: p.YouTubeID, URL: p.YouTubeURL, Hrefs: hrefs(p.Links)}
}

// Video returns the card's linked-video inputs.
func (c Card) Video() VideoSource {
	return VideoSource{ID: c.YouTubeID, URL: c.YouTubeURL, Hrefs: hrefs(c.Links)}
}

// SubtitleText is the subtitle, falling back to the period.
func (c Card) SubtitleText() string {
	if c.Subtitle != "" {
		return c.Subtitle
	}
	return c.Period
}

// DescriptionText is the overview, falling back to the description.
func (c Card) DescriptionText() string {
	if c.Overview != "" {
		return c.Overview
	}
	return c.Description
}
