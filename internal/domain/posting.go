package domain

// Posting is one interpello record as the remote catalog returns it.
// The id is the only stable key; navigation, bookmarking and lookups
// all go through it. Field names mirror the API wire format.
type Posting struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Abstract     string   `json:"abstract"`
	URL          string   `json:"url"`
	Regione      string   `json:"regione"`
	Provincia    string   `json:"provincia"`
	Comune       string   `json:"comune"`
	Scadenza     string   `json:"scadenza,omitempty"`      // ISO 8601, may be absent
	PubblicatoIl string   `json:"pubblicato_il"`
	Categorie    []string `json:"categorie,omitempty"`
	IsOpen       *bool    `json:"is_open,omitempty"`
	Scuola       string   `json:"scuola,omitempty"`
}

// ResultSet is one settled listing response. It is always replaced
// wholesale, never appended to.
type ResultSet struct {
	Items []Posting `json:"items"`
	Total int       `json:"total"`
}
