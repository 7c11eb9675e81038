package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultLevels contient les libellés et couleurs des quatre niveaux du catalogue
var DefaultLevels = map[int]Level{
	1: {Number: 1, Label: "Découverte & Acculturation", Color: "green"},
	2: {Number: 2, Label: "Productivité & Automatisation", Color: "yellow"},
	3: {Number: 3, Label: "Transformation & Stratégie", Color: "blue"},
	4: {Number: 4, Label: "Expertise & Conception", Color: "red"},
}

// FlexibleLevel accepte un niveau sous forme d'objet, de nombre ou de chaîne numérique
type FlexibleLevel struct {
	Level
}

// UnmarshalJSON implémente le unmarshaler pour accepter plusieurs formats de niveau
func (fl *FlexibleLevel) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		fl.Level = Level{}
		return nil
	}

	// Format objet : {"number": 2, "label": "...", "color": "..."}
	if b[0] == '{' {
		var lvl Level
		if err := json.Unmarshal(b, &lvl); err != nil {
			return fmt.Errorf("niveau invalide: %w", err)
		}
		fl.Level = lvl
		return nil
	}

	// Format nombre ou chaîne : 2 ou "2"
	s := strings.Trim(string(b), "\"")
	if s == "" {
		fl.Level = Level{}
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("niveau invalide: %s", s)
	}
	fl.Level = Level{Number: n}
	return nil
}

// Resolve complète le libellé et la couleur manquants à partir des niveaux par défaut
func (fl FlexibleLevel) Resolve() Level {
	lvl := fl.Level
	lvl.Label = strings.TrimSpace(lvl.Label)
	lvl.Color = strings.TrimSpace(lvl.Color)
	if def, ok := DefaultLevels[lvl.Number]; ok {
		if lvl.Label == "" {
			lvl.Label = def.Label
		}
		if lvl.Color == "" {
			lvl.Color = def.Color
		}
	}
	return lvl
}
