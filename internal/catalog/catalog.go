// Package catalog holds the questionnaire's static content: the fixed
// vocabulary of questions and options, the moodboard inspirations, the
// suggested feature list and the skeleton layouts. The wizard and the
// response services validate answers against it.
package catalog

import (
	"strings"

	"github.com/archetype-studio/archetype/internal/domain"
)

// Option is one selectable answer of a question
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Question is one fixed-vocabulary questionnaire step
type Question struct {
	ID          string   `json:"id"`
	Step        int      `json:"step"`
	Label       string   `json:"label"`
	MultiSelect bool     `json:"multi_select"`
	AutoAdvance bool     `json:"auto_advance"`
	Options     []Option `json:"options"`
}

// Inspiration is a moodboard reference image
type Inspiration struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	ImageURL string       `json:"image_url"`
	Tags     StringSetCSV `json:"tags"`
}

// StringSetCSV is a comma-joined tag list kept as-is in the static tables
type StringSetCSV string

// Skeleton is a page-structure layout preview
type Skeleton struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Questions is the ordered fixed-vocabulary question set. Single-select
// questions auto-advance the wizard after the selection animation;
// multi-select questions wait for an explicit continue.
var Questions = []Question{
	{
		ID:          domain.QuestionAmbiance,
		Step:        1,
		Label:       "Quelle ambiance générale pour votre site ?",
		AutoAdvance: true,
		Options: []Option{
			{ID: "minimaliste", Label: "Minimaliste et épuré"},
			{ID: "chaleureux", Label: "Chaleureux et accueillant"},
			{ID: "audacieux", Label: "Audacieux et expressif"},
			{ID: "elegant", Label: "Élégant et raffiné"},
		},
	},
	{
		ID:          domain.QuestionValeurs,
		Step:        2,
		Label:       "Quelles valeurs votre marque doit-elle transmettre ?",
		MultiSelect: true,
		Options: []Option{
			{ID: "confiance", Label: "Confiance"},
			{ID: "innovation", Label: "Innovation"},
			{ID: "proximite", Label: "Proximité"},
			{ID: "excellence", Label: "Excellence"},
			{ID: "transparence", Label: "Transparence"},
			{ID: "creativite", Label: "Créativité"},
		},
	},
	{
		ID:          domain.QuestionStructure,
		Step:        3,
		Label:       "Quelle structure de site imaginez-vous ?",
		AutoAdvance: true,
		Options: []Option{
			{ID: "one-page", Label: "Une seule page qui déroule"},
			{ID: "multi-pages", Label: "Plusieurs pages classiques"},
			{ID: "portfolio", Label: "Portfolio visuel"},
			{ID: "vitrine-boutique", Label: "Vitrine avec boutique"},
		},
	},
	{
		ID:          domain.QuestionTypo,
		Step:        4,
		Label:       "Quel style typographique vous parle ?",
		AutoAdvance: true,
		Options: []Option{
			{ID: "serif", Label: "Classique à empattements"},
			{ID: "sans-serif", Label: "Moderne sans empattements"},
			{ID: "manuscrite", Label: "Manuscrite et personnelle"},
			{ID: "display", Label: "Affirmée et décorative"},
		},
	},
	{
		ID:          domain.QuestionRatio,
		Step:        5,
		Label:       "Quel équilibre entre texte et visuels ?",
		AutoAdvance: true,
		Options: []Option{
			{ID: "texte-domine", Label: "Le texte raconte"},
			{ID: "equilibre", Label: "Un équilibre des deux"},
			{ID: "visuel-domine", Label: "L'image avant tout"},
		},
	},
	{
		ID:          domain.QuestionPalette,
		Step:        6,
		Label:       "Quelle palette de couleurs ?",
		AutoAdvance: true,
		Options: []Option{
			{ID: "neutres", Label: "Neutres et intemporels"},
			{ID: "pastels", Label: "Pastels et douceur"},
			{ID: "vives", Label: "Vives et énergiques"},
			{ID: "sombres", Label: "Sombres et contrastées"},
			{ID: "custom", Label: "Mes propres couleurs"},
		},
	},
}

// Inspirations is the moodboard reference set
var Inspirations = []Inspiration{
	{ID: "insp-01", Title: "Atelier céramique", ImageURL: "/inspirations/insp-01.jpg", Tags: "minimaliste,artisanat"},
	{ID: "insp-02", Title: "Studio photo berlinois", ImageURL: "/inspirations/insp-02.jpg", Tags: "sombre,portfolio"},
	{ID: "insp-03", Title: "Torréfacteur de quartier", ImageURL: "/inspirations/insp-03.jpg", Tags: "chaleureux,vitrine"},
	{ID: "insp-04", Title: "Cabinet d'architectes", ImageURL: "/inspirations/insp-04.jpg", Tags: "epure,serif"},
	{ID: "insp-05", Title: "Marque de cosmétiques", ImageURL: "/inspirations/insp-05.jpg", Tags: "pastels,e-commerce"},
	{ID: "insp-06", Title: "Festival de musique", ImageURL: "/inspirations/insp-06.jpg", Tags: "audacieux,vives"},
	{ID: "insp-07", Title: "Coach sportif", ImageURL: "/inspirations/insp-07.jpg", Tags: "energique,one-page"},
	{ID: "insp-08", Title: "Maison d'édition", ImageURL: "/inspirations/insp-08.jpg", Tags: "texte,editorial"},
	{ID: "insp-09", Title: "Fleuriste en ligne", ImageURL: "/inspirations/insp-09.jpg", Tags: "doux,boutique"},
	{ID: "insp-10", Title: "Agence de voyage", ImageURL: "/inspirations/insp-10.jpg", Tags: "visuel,immersif"},
	{ID: "insp-11", Title: "Restaurant gastronomique", ImageURL: "/inspirations/insp-11.jpg", Tags: "elegant,sombre"},
	{ID: "insp-12", Title: "Startup SaaS", ImageURL: "/inspirations/insp-12.jpg", Tags: "moderne,sans-serif"},
}

// SuggestedFeatures is shown on the feature step; clients may also add
// free-form entries, so this list is not a validation vocabulary.
var SuggestedFeatures = []string{
	"Prise de rendez-vous",
	"Blog / actualités",
	"Newsletter",
	"Paiement en ligne",
	"Galerie photo",
	"Formulaire de contact",
	"Site multilingue",
	"Espace membre",
}

// Skeletons is the set of page-structure previews
var Skeletons = []Skeleton{
	{ID: "skel-hero-grid", Title: "Hero + grille"},
	{ID: "skel-split", Title: "Écran scindé"},
	{ID: "skel-editorial", Title: "Éditorial"},
	{ID: "skel-single-column", Title: "Colonne unique"},
}

// QuestionByID returns a question definition by id
func QuestionByID(id string) (*Question, bool) {
	for i := range Questions {
		if Questions[i].ID == id {
			return &Questions[i], true
		}
	}
	return nil, false
}

// QuestionByStep returns the question shown at a wizard step
func QuestionByStep(step int) (*Question, bool) {
	for i := range Questions {
		if Questions[i].Step == step {
			return &Questions[i], true
		}
	}
	return nil, false
}

// InspirationExists reports whether a moodboard id is part of the catalog
func InspirationExists(id string) bool {
	for _, insp := range Inspirations {
		if insp.ID == id {
			return true
		}
	}
	return false
}

// ValidateAnswer checks an answer value against the question's vocabulary.
// Multi-select answers are comma-joined option id sets.
func ValidateAnswer(questionID, value string) error {
	q, ok := QuestionByID(questionID)
	if !ok {
		return domain.NewValidationError("unknown question id: " + questionID)
	}
	if value == "" {
		return domain.NewValidationError("answer value is required")
	}

	values := []string{value}
	if q.MultiSelect {
		values = strings.Split(value, ",")
	}

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return domain.NewValidationError("answer for " + questionID + " contains an empty option")
		}
		if !optionExists(q, v) {
			return domain.NewValidationError("unknown option '" + v + "' for question " + questionID)
		}
	}
	return nil
}

func optionExists(q *Question, optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
