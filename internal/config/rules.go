package config

import "github.com/Veraticus/the-notes-must-flow/internal/model"

// DefaultRules returns the built-in keyword table. Order matters: the first
// keyword found in a filename decides its folder.
func DefaultRules() []model.ClassificationRule {
	return []model.ClassificationRule{
		{Keyword: "qm", Folder: "Quantum_Mechanics"},
		{Keyword: "quantum", Folder: "Quantum_Mechanics"},
		{Keyword: "schrodinger", Folder: "Quantum_Mechanics"},
		{Keyword: "atom", Folder: "Quantum_Mechanics"},

		{Keyword: "thermo", Folder: "Thermodynamics"},
		{Keyword: "heat", Folder: "Thermodynamics"},
		{Keyword: "thermal", Folder: "Thermodynamics"},

		{Keyword: "mech", Folder: "Classical_Mechanics"},
		{Keyword: "lagrangian", Folder: "Classical_Mechanics"},
		{Keyword: "newton", Folder: "Classical_Mechanics"},

		{Keyword: "em", Folder: "Electromagnetism"},
		{Keyword: "electro", Folder: "Electromagnetism"},
		{Keyword: "maxwell", Folder: "Electromagnetism"},
		{Keyword: "optic", Folder: "Electromagnetism"},
		{Keyword: "wave", Folder: "Electromagnetism"},

		{Keyword: "lab", Folder: "Labs_and_Data"},

		{Keyword: "python", Folder: "Computing"},
		{Keyword: "code", Folder: "Computing"},

		{Keyword: "math", Folder: "Math_Methods"},
		{Keyword: "stats", Folder: "Math_Methods"},

		{Keyword: "universe", Folder: "Astrophysics"},
	}
}
