package types

import "time"

// LeadCreate is the raw landing-page payload for a lead submission. Field names
// follow the public form contract (Portuguese keys).
type LeadCreate struct {
	Nome                string `json:"nome"`
	Email               string `json:"email"`
	Telefone            string `json:"telefone"`
	TipoEstabelecimento string `json:"tipoEstabelecimento"`
	UTMSource           string `json:"utm_source"`
	UTMMedium           string `json:"utm_medium"`
	UTMCampaign         string `json:"utm_campaign"`
}

// Lead is a normalized lead record. ID and CreatedAt are server-assigned at
// persistence time; client-supplied values are never honored.
type Lead struct {
	ID                string    `json:"id"`
	Name              string    `json:"nome"`
	Email             string    `json:"email"`
	Phone             string    `json:"telefone"`
	EstablishmentType string    `json:"tipoEstabelecimento"`
	UTMSource         string    `json:"utm_source"`
	UTMMedium         string    `json:"utm_medium"`
	UTMCampaign       string    `json:"utm_campaign"`
	CreatedAt         time.Time `json:"createdAt"`
}

// LeadResponse is the 201 body for a successful lead submission.
type LeadResponse struct {
	Success bool  `json:"success"`
	Lead    *Lead `json:"lead"`
}
