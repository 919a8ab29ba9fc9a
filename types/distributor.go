package types

import "time"

// DistributorCreate is the raw landing-page payload for a distributor
// application.
type DistributorCreate struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Empresa     string `json:"empresa"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	Experiencia string `json:"experiencia_distribuicao"`
	Mensagem    string `json:"mensagem"`
}

// Distributor is a normalized distributor-application record.
type Distributor struct {
	ID         string    `json:"id"`
	Name       string    `json:"nome"`
	Email      string    `json:"email"`
	Phone      string    `json:"telefone"`
	Company    string    `json:"empresa,omitempty"`
	City       string    `json:"cidade,omitempty"`
	State      string    `json:"estado,omitempty"`
	Experience string    `json:"experiencia_distribuicao,omitempty"`
	Message    string    `json:"mensagem,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DistributorResponse is the 201 body for a successful application.
type DistributorResponse struct {
	Success     bool         `json:"success"`
	Distributor *Distributor `json:"distribuidor"`
}
