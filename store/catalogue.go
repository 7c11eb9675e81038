package store

import (
	"time"

	"qwesty-backend/models"
)

var standardFormats = []string{"Présentiel", "Distanciel", "Ateliers sur cas réels entreprise"}

func withFormats(extra ...string) []string {
	out := append([]string{}, standardFormats...)
	return append(out, extra...)
}

// Catalogue retourne les huit formations de référence, identifiants f1 à f8
func Catalogue() []models.Formation {
	lvl := models.DefaultLevels
	demo := "Démonstrations live"
	proto := "Possibilité de produire un prototype pendant la formation"

	formations := []models.Formation{
		{
			ID:            "f1",
			Title:         "IA pour décideurs : comprendre sans devenir ingénieur",
			Slug:          "ia-pour-decideurs",
			Subtitle:      "Comprendre l'IA pour prendre les bonnes décisions stratégiques",
			Level:         lvl[1],
			Public:        "Dirigeants, managers, fonctions support",
			Duration:      "1 jour",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Comprendre ce que l'IA sait vraiment faire aujourd'hui",
				"Identifier les opportunités rapides dans son organisation",
				"Séparer innovation réelle et poudre aux yeux",
			},
			Program: []string{
				"Panorama IA & IA générative",
				"Cas d'usage par métiers",
				"Où l'IA fait gagner de l'argent, où elle en brûle",
				"Méthode pour détecter les projets prioritaires",
			},
			Deliverables: []string{
				"Grille d'identification d'opportunités",
				"Shortlist de quick wins",
				"Plan d'expérimentation sur 90 jours",
			},
			Formats:  withFormats(demo),
			Featured: true,
			Order:    1,
		},
		{
			ID:            "f2",
			Title:         "Travailler avec l'IA au quotidien",
			Slug:          "travailler-avec-ia-au-quotidien",
			Subtitle:      "Boostez votre productivité dès maintenant grâce à l'IA",
			Level:         lvl[1],
			Public:        "Collaborateurs",
			Duration:      "1 jour",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Utiliser l'IA pour produire plus vite",
				"Améliorer mails, synthèses, comptes rendus",
				"Gagner du temps immédiatement",
			},
			Program: []string{
				"Principes de prompting",
				"Rédaction, résumé, traduction",
				"Automatisation des tâches répétitives",
				"Limites & vérifications humaines",
			},
			Deliverables: []string{
				"Bibliothèque de prompts métiers",
				"Templates réutilisables",
			},
			Formats:  withFormats(demo),
			Featured: true,
			Order:    2,
		},
		{
			ID:            "f3",
			Title:         "Automatiser ses processus avec l'IA",
			Slug:          "automatiser-processus-ia",
			Subtitle:      "Identifiez et automatisez les tâches à forte valeur ajoutée",
			Level:         lvl[2],
			Public:        "Responsables opérations, IT, qualité",
			Duration:      "2 jours",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Cartographier les tâches automatisables",
				"Mettre en place des flux simples",
				"Calculer le ROI d'une automatisation",
			},
			Program: []string{
				"Identifier les points de friction",
				"IA + workflows",
				"Collecte et structuration de données",
				"Supervision humaine",
			},
			Deliverables: []string{
				"Carte des processus candidats",
				"1 prototype d'automatisation",
				"Estimation gains temps / coûts",
			},
			Formats:  withFormats(demo, proto),
			Featured: true,
			Order:    3,
		},
		{
			ID:            "f4",
			Title:         "Créer un assistant IA interne",
			Slug:          "creer-assistant-ia-interne",
			Subtitle:      "Construisez votre premier assistant IA d'entreprise",
			Level:         lvl[2],
			Public:        "Équipes digitales / innovation",
			Duration:      "2 à 3 jours",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Comprendre comment fonctionne un assistant d'entreprise",
				"Définir règles, sources de données, escalade humaine",
				"Construire une première version exploitable",
			},
			Program: []string{
				"Architecture d'un assistant",
				"Base de connaissances",
				"Scénarios utilisateurs",
				"Sécurité & gouvernance",
			},
			Deliverables: []string{
				"Blueprint fonctionnel",
				"Script conversationnel",
				"Roadmap MVP → production",
			},
			Formats:  withFormats(demo, proto),
			Featured: false,
			Order:    4,
		},
		{
			ID:            "f5",
			Title:         "Définir une feuille de route IA",
			Slug:          "feuille-de-route-ia",
			Subtitle:      "Structurez votre stratégie IA avec méthode et pragmatisme",
			Level:         lvl[3],
			Public:        "COMEX, direction transformation",
			Duration:      "2 jours",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Prioriser les investissements",
				"Éviter les gadgets",
				"Structurer gouvernance et risques",
			},
			Program: []string{
				"Benchmark marché",
				"Modèle de maturité",
				"Choix Make vs Buy",
				"Organisation cible",
			},
			Deliverables: []string{
				"Roadmap stratégique",
				"Matrice valeur / complexité",
				"Budget indicatif",
			},
			Formats:  withFormats(),
			Featured: true,
			Order:    5,
		},
		{
			ID:            "f6",
			Title:         "Piloter la performance des projets IA",
			Slug:          "piloter-performance-projets-ia",
			Subtitle:      "Mesurez, suivez et optimisez vos projets IA en continu",
			Level:         lvl[3],
			Public:        "Management, PMO",
			Duration:      "1 jour",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Mesurer impact réel",
				"Mettre en place des indicateurs utiles",
				"Ajuster rapidement",
			},
			Program: []string{
				"KPI IA",
				"Adoption utilisateurs",
				"Suivi qualité",
				"Amélioration continue",
			},
			Deliverables: []string{
				"Dashboard type",
				"Méthode de revue trimestrielle",
			},
			Formats:  withFormats(),
			Featured: false,
			Order:    6,
		},
		{
			ID:            "f7",
			Title:         "Concevoir des systèmes intelligents robustes",
			Slug:          "concevoir-systemes-intelligents",
			Subtitle:      "Maîtrisez l'architecture et l'industrialisation de systèmes IA avancés",
			Level:         lvl[4],
			Public:        "Profils techniques",
			Duration:      "3 jours",
			Prerequisites: "Connaissances techniques en développement",
			Objectives: []string{
				"Comprendre les briques d'un système avancé",
				"Gérer données, mémoire, règles",
				"Préparer l'industrialisation",
			},
			Program: []string{
				"Orchestration",
				"Qualité des réponses",
				"Gestion des erreurs",
				"Passage à l'échelle",
			},
			Deliverables: []string{
				"Schéma d'architecture",
				"Standards d'implémentation",
			},
			Formats:  withFormats(demo, proto),
			Featured: false,
			Order:    7,
		},
		{
			ID:            "f8",
			Title:         "Sécurité, conformité et éthique de l'IA",
			Slug:          "securite-conformite-ethique-ia",
			Subtitle:      "Anticipez les risques et sécurisez vos usages de l'IA",
			Level:         lvl[4],
			Public:        "IT, juridique, direction",
			Duration:      "1 jour",
			Prerequisites: "Aucun",
			Objectives: []string{
				"Identifier risques réglementaires",
				"Mettre en place des garde-fous",
				"Sécuriser les usages",
			},
			Program: []string{
				"Données sensibles",
				"Traçabilité",
				"Responsabilités",
				"Bonnes pratiques",
			},
			Deliverables: []string{
				"Checklist conformité",
				"Politique d'usage IA",
			},
			Formats:  withFormats(),
			Featured: false,
			Order:    8,
		},
	}

	now := time.Now().UTC()
	for i := range formations {
		formations[i].CreatedAt = now
		formations[i].UpdatedAt = now
	}
	return formations
}
