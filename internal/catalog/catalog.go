package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"

	"mindcoach/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// MinArchetypes is the smallest archetype catalog a match can be served from
const MinArchetypes = 2

// Catalog holds the static reference data loaded once at start-up.
// It is shared between requests and must be treated as read-only.
type Catalog struct {
	QuizItems  []models.QuizItem       `yaml:"quiz_items"`
	Personas   []models.Persona        `yaml:"personas"`
	Archetypes []models.CoachArchetype `yaml:"archetypes"`
	Exercises  []models.Exercise       `yaml:"exercises"`
	Goals      []string                `yaml:"goals"`

	quizByID      map[string]*models.QuizItem
	personaByID   map[string]*models.Persona
	archetypeByID map[string]*models.CoachArchetype
	exerciseByID  map[string]*models.Exercise
	rationales    map[string]*template.Template
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	if len(c.Archetypes) < MinArchetypes {
		return configErrorf("need at least %d coach archetypes, have %d", MinArchetypes, len(c.Archetypes))
	}

	c.quizByID = make(map[string]*models.QuizItem, len(c.QuizItems))
	for i := range c.QuizItems {
		item := &c.QuizItems[i]
		if item.ID == "" {
			return configErrorf("quiz item %d has no id", i)
		}
		if _, dup := c.quizByID[item.ID]; dup {
			return configErrorf("duplicate quiz item %s", item.ID)
		}
		if !item.Construct.Valid() {
			return configErrorf("quiz item %s references unknown construct %q", item.ID, item.Construct)
		}
		c.quizByID[item.ID] = item
	}

	c.personaByID = make(map[string]*models.Persona, len(c.Personas))
	for i := range c.Personas {
		p := &c.Personas[i]
		if p.ID == "" {
			return configErrorf("persona %d has no id", i)
		}
		if _, dup := c.personaByID[p.ID]; dup {
			return configErrorf("duplicate persona %s", p.ID)
		}
		for construct, weight := range p.Weights {
			if !construct.Valid() {
				return configErrorf("persona %s weights unknown construct %q", p.ID, construct)
			}
			if weight < 0 {
				return configErrorf("persona %s has negative weight for %s", p.ID, construct)
			}
		}
		c.personaByID[p.ID] = p
	}

	c.archetypeByID = make(map[string]*models.CoachArchetype, len(c.Archetypes))
	c.rationales = make(map[string]*template.Template, len(c.Archetypes))
	for i := range c.Archetypes {
		a := &c.Archetypes[i]
		if a.ID == "" {
			return configErrorf("archetype %d has no id", i)
		}
		if _, dup := c.archetypeByID[a.ID]; dup {
			return configErrorf("duplicate archetype %s", a.ID)
		}
		for _, construct := range a.Constructs {
			if !construct.Valid() {
				return configErrorf("archetype %s draws on unknown construct %q", a.ID, construct)
			}
		}
		tmpl, err := template.New(a.ID).Option("missingkey=zero").Parse(a.Rationale)
		if err != nil {
			return configErrorf("archetype %s rationale: %v", a.ID, err)
		}
		c.archetypeByID[a.ID] = a
		c.rationales[a.ID] = tmpl
	}

	for _, p := range c.Personas {
		for archetypeID := range p.ArchetypeBonus {
			if _, ok := c.archetypeByID[archetypeID]; !ok {
				return configErrorf("persona %s gives a bonus to unknown archetype %s", p.ID, archetypeID)
			}
		}
	}

	c.exerciseByID = make(map[string]*models.Exercise, len(c.Exercises))
	for i := range c.Exercises {
		e := &c.Exercises[i]
		if _, dup := c.exerciseByID[e.ID]; dup {
			return configErrorf("duplicate exercise %s", e.ID)
		}
		c.exerciseByID[e.ID] = e
	}

	return nil
}

// QuizItem looks up a quiz item by id
func (c *Catalog) QuizItem(id string) (*models.QuizItem, bool) {
	item, ok := c.quizByID[id]
	return item, ok
}

// Persona looks up a persona by id
func (c *Catalog) Persona(id string) (*models.Persona, error) {
	p, ok := c.personaByID[id]
	if !ok {
		return nil, &NotFoundError{Kind: "persona", ID: id}
	}
	return p, nil
}

// Archetype looks up a coach archetype by id
func (c *Catalog) Archetype(id string) (*models.CoachArchetype, error) {
	a, ok := c.archetypeByID[id]
	if !ok {
		return nil, &NotFoundError{Kind: "archetype", ID: id}
	}
	return a, nil
}

// Exercise looks up a mind gym exercise by id
func (c *Catalog) Exercise(id string) (*models.Exercise, error) {
	e, ok := c.exerciseByID[id]
	if !ok {
		return nil, &NotFoundError{Kind: "exercise", ID: id}
	}
	return e, nil
}

// ExerciseLabels returns a fresh id -> short label table
func (c *Catalog) ExerciseLabels() map[string]string {
	labels := make(map[string]string, len(c.Exercises))
	for _, e := range c.Exercises {
		labels[e.ID] = e.Label
	}
	return labels
}

// Rationale returns the compiled rationale template of an archetype
func (c *Catalog) Rationale(archetypeID string) *template.Template {
	return c.rationales[archetypeID]
}
