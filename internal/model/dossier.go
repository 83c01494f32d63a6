package model

// Dossier is the backend-computed sender profile fetched per email.
type Dossier struct {
	Identity  DossierIdentity  `json:"identity"`
	Sentiment DossierSentiment `json:"sentiment"`
	History   []DossierEntry   `json:"history"`
}

type DossierIdentity struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

type DossierSentiment struct {
	Current string `json:"current"`
	Trend   string `json:"trend"`
}

type DossierEntry struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	Tone    string `json:"tone"`
}
