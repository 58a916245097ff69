package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a farm or landowner serviced by the company.
type Client struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	CompanyID           uuid.UUID `json:"company_id" db:"company_id"`
	NomeRazaoSocial     string    `json:"nome_razao_social" db:"nome_razao_social"`
	CPFCNPJ             *string   `json:"cpf_cnpj" db:"cpf_cnpj"`
	PropriedadeFazenda  *string   `json:"propriedade_fazenda" db:"propriedade_fazenda"`
	EnderecoLocalizacao *string   `json:"endereco_localizacao" db:"endereco_localizacao"`
	Municipio           string    `json:"municipio" db:"municipio"`
	UF                  string    `json:"uf" db:"uf"`
	Observacoes         *string   `json:"observacoes" db:"observacoes"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
