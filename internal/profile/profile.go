// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile supplies the department matching configuration: built-in
// defaults for the two University of Padova departments the screening was
// written for, and a YAML loader for overriding them without recompiling.
package profile

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/collab-scan/pkg/types"
)

// keyFacultyCap bounds the cross-searched subset when no key_faculty list
// is configured, to keep the query sweep within the fair-use budget.
const keyFacultyCap = 12

// File is the on-disk profiles document: the two department identities plus
// the shared institution location configuration.
type File struct {
	First  types.DepartmentProfile `yaml:"first"`
	Second types.DepartmentProfile `yaml:"second"`

	// LocationTokens are lowercase substrings of the institution's known
	// name spellings, checked against joined affiliation text.
	LocationTokens []string `yaml:"location_tokens"`

	// LocationTerms are the institution spellings used in search
	// expressions (e.g. Padova, Padua).
	LocationTerms []string `yaml:"location_terms"`
}

// Load reads a profiles file. An empty path returns the built-in defaults.
func Load(path string) (File, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading profiles file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing profiles file: %w", err)
	}
	if err := f.validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) validate() error {
	for _, p := range []types.DepartmentProfile{f.First, f.Second} {
		if p.Abbrev == "" {
			return fmt.Errorf("profile %q: abbrev is required", p.Name)
		}
		if len(p.AffiliationPatterns) == 0 {
			return fmt.Errorf("profile %s: at least one affiliation pattern is required", p.Abbrev)
		}
	}
	if len(f.LocationTokens) == 0 {
		return fmt.Errorf("location_tokens is required")
	}
	return nil
}

// KeyFaculty returns the subset of a roster used for author cross-search
// queries: the configured key_faculty list, or the leading roster entries
// capped at 12.
func KeyFaculty(p types.DepartmentProfile) []string {
	if len(p.KeyFaculty) > 0 {
		return p.KeyFaculty
	}
	if len(p.FacultyNames) <= keyFacultyCap {
		return p.FacultyNames
	}
	return p.FacultyNames[:keyFacultyCap]
}

// Defaults returns the built-in DCTV/DSF configuration. The pattern sets and
// rosters were assembled from an affiliation-variant screening pass and the
// departments' published staff lists.
func Defaults() File {
	return File{
		First:          defaultDCTV(),
		Second:         defaultDSF(),
		LocationTokens: []string{"padov", "padua"},
		LocationTerms:  []string{"Padova", "Padua"},
	}
}

func defaultDCTV() types.DepartmentProfile {
	return types.DepartmentProfile{
		Name:   "Dipartimento di Scienze Cardio-Toraco-Vascolari e Sanità Pubblica",
		Abbrev: "dctv",
		AffiliationPatterns: []string{
			// With Public Health
			`cardiac.*thoracic.*vascular.*sciences.*public.*health`,
			`cardiac.*thoracic.*vascular.*public.*health`,
			`cardio.*thoraco.*vascular.*public.*health`,
			`cardiovascular.*public.*health.*padov`,
			`cardiovascular.*public.*health.*padua`,
			// Without Public Health (older naming)
			`cardiac.*thoracic.*vascular.*sciences.*padov`,
			`cardiac.*thoracic.*vascular.*sciences.*padua`,
			`cardiac,?\s*thoracic,?\s*(and\s+)?vascular.*padov`,
			`cardiac,?\s*thoracic,?\s*(and\s+)?vascular.*padua`,
			// Legal Medicine and Toxicology (part of DCTV)
			`legal\s+medicine.*padov`,
			`legal\s+medicine.*padua`,
			`medicina\s+legale.*padov`,
			// Italian variants
			`cardio.*toraco.*vascolar.*sanit`,
			`scienze.*cardio.*toraco.*vascolar`,
			// Abbreviation
			`\bdctv\b`,
		},
		FacultyNames: []string{
			// Professori Ordinari
			"Angelini Annalisa", "Baldo Vincenzo", "Basso Cristina", "Calabrese Fiorella",
			"Corrado Domenico", "Cozzi Emanuele", "Gerosa Gino", "Grego Franco",
			"Gregori Dario", "Montisci Massimo", "Spagnolo Paolo", "Stramare Roberto",
			"Tarantini Giuseppe", "Tona Francesco", "Vida Vladimiro",
			// Professori Associati Confermati
			"Adimari Gianfranco", "Aprile Anna", "Favretto Donata", "Meloni Federica",
			// Professori Associati
			"Antonello Michele", "Baldi Ileana", "Baldovin Tatjana", "Baraldo Simonetta",
			"Bauce Barbara", "Bazzan Erica", "Bertoncello Chiara", "Biondini Davide",
			"Buja Alessandra", "Caenazzo Luciana", "Caforio Alida", "Canova Cristina",
			"Carrieri Mariella", "Castellani Chiara", "Catelan Dolores", "Cipriani Alberto",
			"Cocchio Silvia", "D'Onofrio Augusto", "Dell'Amore Andrea", "Frigo Anna Chiara",
			"Gianfredi Vincenza", "Iop Laura", "Mason Paola", "Migliore Federico",
			"Motta Raffaella", "Pavanello Sofia", "Perazzolo Marra Martina", "Piazza Michele",
			"Pilichou Kalliopi", "Rizzo Stefania", "Scapellato Maria Luisa", "Schiavon Marco",
			"Squizzato Francesco", "Tarzia Vincenzo", "Terranova Claudio", "Turato Graziella",
			"Vianello Andrea", "Viel Guido", "Zampieri Fabio", "Zorzi Alessandro",
			// Ricercatori
			"Menegolo Mirko", "Bernardinello Nicol", "Campisi Manuela", "Cecere Annagrazia",
			"Colacchio Elda Chiara", "De Gaspari Monica", "De Michieli Laura", "Faccioli Eleonora",
			"Franchetti Giorgia", "Giordani Andrea Silvio", "Graziano Francesca", "Liviero Filippo",
			"Longhini Jessica", "Martinato Matteo", "Ocagli Honoria", "Sabbatini Daniele",
			"Stoppa Giorgia", "Tine Mariaenrica", "Vadori Marta", "Vedovelli Luca",
			"Zanatta Alberto", "Giraudo Chiara", "Lorenzoni Giulia", "Pezzuto Federica", "Tozzo Pamela",
		},
		KeyFaculty: []string{
			"Basso Cristina", "Gerosa Gino", "Corrado Domenico", "Buja Alessandra",
			"Baldo Vincenzo", "Calabrese Fiorella", "Caenazzo Luciana", "Favretto Donata",
			"Tona Francesco", "Iop Laura", "Giraudo Chiara", "Tozzo Pamela",
		},
		SearchTerms: []string{
			"Cardiac Thoracic Vascular",
			"Cardio-Toraco-Vascolar",
			// Legal Medicine is a DCTV sub-unit whose papers often carry
			// only the unit name in the affiliation.
			"Legal Medicine",
			"Medicina Legale",
		},
		HintTerms: []string{"Cardiac", "Cardio", "Public Health", "Vascular"},
		ScreenQueries: []string{
			`"Cardio-Toraco-Vascolar"[Affiliation] AND Padova[Affiliation]`,
			`"Cardiac Thoracic Vascular"[Affiliation] AND Padova[Affiliation]`,
			`"Sanità Pubblica"[Affiliation] AND Padova[Affiliation]`,
			`"Public Health"[Affiliation] AND Padova[Affiliation] AND (Cardiac OR Cardio OR Vascular)`,
			`"DCTV"[Affiliation] AND Padova[Affiliation]`,
			`"Cardiothoracic"[Affiliation] AND Padova[Affiliation]`,
		},
	}
}

func defaultDSF() types.DepartmentProfile {
	return types.DepartmentProfile{
		Name:   "Dipartimento di Scienze del Farmaco",
		Abbrev: "dsf",
		AffiliationPatterns: []string{
			`pharmaceutical.*pharmacological.*sciences.*padov`,
			`pharmaceutical.*pharmacological.*sciences.*padua`,
			`pharmaceutical\s+(&|and)\s+pharmacological.*padov`,
			`pharmaceutical\s+(&|and)\s+pharmacological.*padua`,
			`scienze.*del.*farmaco.*padov`,
			`scienze.*del.*farmaco.*padua`,
		},
		FacultyNames: []string{
			// Professori Ordinari
			"Brini Marisa", "Caliceti Paolo", "Calo Girolamo", "Conconi Maria Teresa",
			"Gatto Barbara", "Morari Michele", "Moro Stefano", "Pasut Gianfranco",
			"Salmaso Stefano", "Sissi Claudia",
			// Professori Associati Confermati
			"Bertazzo Antonella", "Chilin Adriana", "Dalla Via Lisa", "De Filippis Vincenzo",
			"Dolmella Alessandro", "Filippini Raffaella", "Froldi Guglielmina", "Miolo Giorgia",
			// Professori Associati
			"Bolego Chiara", "Colucci Rocchina", "Comai Stefano", "Dall'Acqua Stefano",
			"De Martin Sara", "Di Liddo Rosa", "Franceschinis Erica", "Gandin Valentina",
			"Garofalo Mariangela", "Giron Maria Cecilia", "Malfanti Alessio", "Marzano Cristina",
			"Mastrotto Francesca", "Mattarei Andrea", "Montopoli Monica", "Morpurgo Margherita",
			"Piovan Anna", "Polverino De Laureto Patrizia", "Sosic Alice", "Spolaore Barbara",
			"Sturlese Mattia", "Zusso Morena",
			// Ricercatori
			"Quintieri Luigi", "Semenzato Alessandra", "Trevisi Lucia", "Acquasaliente Laura",
			"Franchin Cinzia", "Gabbia Daniela", "Bortolozzi Roberta", "Malfacini Davide",
			"Menilli Luca", "Rampado Riccardo", "Grigoletto Antonella", "Rigo Riccardo",
			"Runfola Massimiliano", "Salmaso Veronica",
		},
		KeyFaculty: []string{
			"Caliceti Paolo", "Salmaso Stefano", "Moro Stefano", "De Filippis Vincenzo",
			"Conconi Maria Teresa", "Di Liddo Rosa", "Montopoli Monica", "Gabbia Daniela",
			"De Martin Sara", "Zusso Morena", "Miolo Giorgia", "Acquasaliente Laura",
		},
		SearchTerms: []string{
			"Pharmaceutical and Pharmacological Sciences",
			"Scienze del Farmaco",
		},
		HintTerms: []string{"Pharmaceutical", "Pharmacological", "Farmaco"},
		ScreenQueries: []string{
			`"Scienze del Farmaco"[Affiliation] AND Padova[Affiliation]`,
			`"Pharmaceutical Sciences"[Affiliation] AND Padova[Affiliation]`,
			`"Pharmacological Sciences"[Affiliation] AND Padova[Affiliation]`,
			`"Pharmaceutical and Pharmacological"[Affiliation] AND Padova[Affiliation]`,
			`"DSF"[Affiliation] AND Padova[Affiliation] AND (Pharma OR Drug)`,
			`"Department of Pharmaceutical"[Affiliation] AND (Padova OR Padua)[Affiliation]`,
		},
	}
}
