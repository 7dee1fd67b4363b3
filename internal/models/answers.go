package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CompanySize is the enumerated answer to the tailleEntreprise question
type CompanySize string

const (
	SizeStartup CompanySize = "startup"
	SizePME     CompanySize = "pme"
	SizeGrande  CompanySize = "grande"
)

// Valid reports whether s is one of the known company sizes
func (s CompanySize) Valid() bool {
	switch s {
	case SizeStartup, SizePME, SizeGrande:
		return true
	}
	return false
}

// Question ids, shared by the questionnaire and the answer record
const (
	FieldTailleEntreprise    = "tailleEntreprise"
	FieldSecteurActivite     = "secteurActivite"
	FieldDemandeClientVolume = "demandeClientVolume"
	FieldServiceClient       = "serviceClient"
	FieldCreationContenu     = "creationContenu"
	FieldMarketingDigital    = "marketingDigital"
	FieldAnalysesDonnees     = "analysesDonnees"
	FieldGestionStock        = "gestionStock"
	FieldRecrutement         = "recrutement"
	FieldComptabilite        = "comptabilite"
)

// Answers holds the (possibly partial) questionnaire answers.
// A nil pointer or empty string means the question has not been answered yet.
type Answers struct {
	DemandeClientVolume *int        `json:"demandeClientVolume,omitempty" yaml:"demandeClientVolume,omitempty"`
	CreationContenu     *bool       `json:"creationContenu,omitempty" yaml:"creationContenu,omitempty"`
	GestionStock        *bool       `json:"gestionStock,omitempty" yaml:"gestionStock,omitempty"`
	AnalysesDonnees     *bool       `json:"analysesDonnees,omitempty" yaml:"analysesDonnees,omitempty"`
	Recrutement         *bool       `json:"recrutement,omitempty" yaml:"recrutement,omitempty"`
	Comptabilite        *bool       `json:"comptabilite,omitempty" yaml:"comptabilite,omitempty"`
	MarketingDigital    *bool       `json:"marketingDigital,omitempty" yaml:"marketingDigital,omitempty"`
	ServiceClient       *bool       `json:"serviceClient,omitempty" yaml:"serviceClient,omitempty"`
	TailleEntreprise    CompanySize `json:"tailleEntreprise,omitempty" yaml:"tailleEntreprise,omitempty"`
	SecteurActivite     string      `json:"secteurActivite,omitempty" yaml:"secteurActivite,omitempty"`
}

// Volume returns the weekly customer request volume, 0 when unanswered
func (a Answers) Volume() int {
	if a.DemandeClientVolume == nil {
		return 0
	}
	return *a.DemandeClientVolume
}

// Flag returns the value of a boolean answer, false when unanswered or unknown
func (a Answers) Flag(id string) bool {
	p := a.boolField(id)
	return p != nil && *p
}

// Has reports whether the question id has a defined, non-empty value
func (a Answers) Has(id string) bool {
	switch id {
	case FieldDemandeClientVolume:
		return a.DemandeClientVolume != nil
	case FieldTailleEntreprise:
		return a.TailleEntreprise != ""
	case FieldSecteurActivite:
		return strings.TrimSpace(a.SecteurActivite) != ""
	default:
		return a.boolField(id) != nil
	}
}

// Set assigns a single answer. value is expected in its decoded JSON form
// (bool, float64/int/json.Number or string).
func (a *Answers) Set(id string, value any) error {
	switch id {
	case FieldDemandeClientVolume:
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		if n < 0 {
			return fmt.Errorf("%s: must not be negative", id)
		}
		a.DemandeClientVolume = &n
	case FieldTailleEntreprise:
		s, ok := value.(string)
		if !ok || !CompanySize(s).Valid() {
			return fmt.Errorf("%s: expected one of startup, pme, grande", id)
		}
		a.TailleEntreprise = CompanySize(s)
	case FieldSecteurActivite:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s: expected a string", id)
		}
		a.SecteurActivite = s
	default:
		p := a.boolPtr(id)
		if p == nil {
			return fmt.Errorf("unknown question %q", id)
		}
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s: expected a boolean", id)
		}
		*p = &b
	}
	return nil
}

func (a Answers) boolField(id string) *bool {
	p := a.boolPtr(id)
	if p == nil {
		return nil
	}
	return *p
}

func (a *Answers) boolPtr(id string) **bool {
	switch id {
	case FieldServiceClient:
		return &a.ServiceClient
	case FieldCreationContenu:
		return &a.CreationContenu
	case FieldMarketingDigital:
		return &a.MarketingDigital
	case FieldAnalysesDonnees:
		return &a.AnalysesDonnees
	case FieldGestionStock:
		return &a.GestionStock
	case FieldRecrutement:
		return &a.Recrutement
	case FieldComptabilite:
		return &a.Comptabilite
	}
	return nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected an integer, got %v", v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected an integer: %w", err)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", value)
}
