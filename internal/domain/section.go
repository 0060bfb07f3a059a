package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownSection indicates a section identifier outside the twelve arc42 chapters.
var ErrUnknownSection = errors.New("unknown arc42 section")

// Section identifies one of the twelve arc42 chapters.
// The string value doubles as the section file basename in a workspace.
type Section string

const (
	SectionIntroductionAndGoals    Section = "01_introduction_and_goals"
	SectionArchitectureConstraints Section = "02_architecture_constraints"
	SectionContextAndScope         Section = "03_context_and_scope"
	SectionSolutionStrategy        Section = "04_solution_strategy"
	SectionBuildingBlockView       Section = "05_building_block_view"
	SectionRuntimeView             Section = "06_runtime_view"
	SectionDeploymentView          Section = "07_deployment_view"
	SectionConcepts                Section = "08_concepts"
	SectionArchitectureDecisions   Section = "09_architecture_decisions"
	SectionQualityRequirements     Section = "10_quality_requirements"
	SectionTechnicalRisks          Section = "11_technical_risks"
	SectionGlossary                Section = "12_glossary"
)

// Sections lists all arc42 sections in document order.
var Sections = []Section{
	SectionIntroductionAndGoals,
	SectionArchitectureConstraints,
	SectionContextAndScope,
	SectionSolutionStrategy,
	SectionBuildingBlockView,
	SectionRuntimeView,
	SectionDeploymentView,
	SectionConcepts,
	SectionArchitectureDecisions,
	SectionQualityRequirements,
	SectionTechnicalRisks,
	SectionGlossary,
}

// SectionInfo is the canonical English naming of a section.
// Localized strategies supply their own text; this is the naming source of truth.
type SectionInfo struct {
	Title       string
	Description string
}

var sectionInfo = map[Section]SectionInfo{
	SectionIntroductionAndGoals: {
		Title:       "Introduction and Goals",
		Description: "Requirements overview, top quality goals, and the most important stakeholders.",
	},
	SectionArchitectureConstraints: {
		Title:       "Architecture Constraints",
		Description: "Technical, organizational and political constraints that restrict design decisions.",
	},
	SectionContextAndScope: {
		Title:       "Context and Scope",
		Description: "Business and technical context: the system's communication partners and interfaces.",
	},
	SectionSolutionStrategy: {
		Title:       "Solution Strategy",
		Description: "Fundamental decisions and solution strategies that shape the architecture.",
	},
	SectionBuildingBlockView: {
		Title:       "Building Block View",
		Description: "Static decomposition of the system into building blocks and their relationships.",
	},
	SectionRuntimeView: {
		Title:       "Runtime View",
		Description: "Behavior and interaction of building blocks in important runtime scenarios.",
	},
	SectionDeploymentView: {
		Title:       "Deployment View",
		Description: "Technical infrastructure and the mapping of building blocks onto it.",
	},
	SectionConcepts: {
		Title:       "Cross-cutting Concepts",
		Description: "Overall regulations and solution ideas relevant in multiple parts of the system.",
	},
	SectionArchitectureDecisions: {
		Title:       "Architecture Decisions",
		Description: "Important, expensive, large-scale or risky architecture decisions and their rationale.",
	},
	SectionQualityRequirements: {
		Title:       "Quality Requirements",
		Description: "Quality tree and concrete quality scenarios.",
	},
	SectionTechnicalRisks: {
		Title:       "Risks and Technical Debts",
		Description: "Known technical risks and technical debts, ordered by priority.",
	},
	SectionGlossary: {
		Title:       "Glossary",
		Description: "Important domain and technical terms used by stakeholders.",
	},
}

// Info returns the canonical English title and description.
func (s Section) Info() SectionInfo {
	return sectionInfo[s]
}

// Number returns the 1-based position of the section, or 0 for unknown sections.
func (s Section) Number() int {
	for i, sec := range Sections {
		if sec == s {
			return i + 1
		}
	}
	return 0
}

// IsValid reports whether s is one of the twelve arc42 sections.
func (s Section) IsValid() bool {
	_, ok := sectionInfo[s]
	return ok
}

func (s Section) String() string {
	return string(s)
}

// ParseSection resolves a user supplied section reference.
// Accepts the full identifier ("05_building_block_view", case-insensitive)
// or the chapter number ("5", "05").
func ParseSection(value string) (Section, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", fmt.Errorf("%w: empty section", ErrUnknownSection)
	}

	if s := Section(v); s.IsValid() {
		return s, nil
	}

	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(Sections) {
		return Sections[n-1], nil
	}

	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownSection, value, strings.Join(SectionIDs(), ", "))
}

// SectionIDs returns the section identifiers as plain strings, in document order.
func SectionIDs() []string {
	ids := make([]string, len(Sections))
	for i, s := range Sections {
		ids[i] = string(s)
	}
	return ids
}
