package expand

import "strings"

// Synonyms maps a lower-case keyword to its related terms in display order.
type Synonyms map[string][]string

// Lookup matches the whole keyword, lower-cased. Unknown keywords yield nil.
func (s Synonyms) Lookup(keyword string) []string {
	if s == nil {
		return nil
	}
	return s[strings.ToLower(keyword)]
}

// DefaultSynonyms is the built-in table for common service-sector roles.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		"limpeza":       {"faxina", "faxineira", "zeladoria"},
		"motorista":     {"condutor", "piloto", "chauffeur"},
		"segurança":     {"vigilância", "vigilante", "porteiro", "controlador de acesso"},
		"atendimento":   {"recepção", "recepcionista", "balconista"},
		"administração": {"gestão", "gerência", "administrativo"},
		"estoque":       {"almoxarifado", "almoxarife", "armazenagem"},
	}
}
