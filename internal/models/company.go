package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType enumerates the spraying services a company declares it provides.
var ValidServiceTypes = map[string]bool{
	"agrotoxicos":   true,
	"fertilizantes": true,
	"inoculantes":   true,
	"corretivos":    true,
	"semeadura":     true,
	"outros":        true,
}

// ResponsavelTecnico is the company-level default technical responsible,
// used as the fallback for the Anexo XI signature block.
type ResponsavelTecnico struct {
	Nome string `json:"nome"`
	CREA string `json:"crea"`
}

// CompanyDefaults holds the per-company default values used to pre-fill
// new application records.
type CompanyDefaults struct {
	PontaPulverizacao string   `json:"ponta_pulverizacao,omitempty"`
	AlturaVoo         *float64 `json:"altura_voo,omitempty"`
	Equipamento       string   `json:"equipamento,omitempty"`
	Modelo            string   `json:"modelo,omitempty"`
	Tipo              string   `json:"tipo,omitempty"`
	Angulo            string   `json:"angulo,omitempty"`
	Unidades          string   `json:"unidades,omitempty"` // default "L/ha"
	Observacoes       string   `json:"observacoes,omitempty"`
}

type Company struct {
	ID                  uuid.UUID          `json:"id" db:"id"`
	RazaoSocial         string             `json:"razao_social" db:"razao_social"`
	NomeFantasia        *string            `json:"nome_fantasia" db:"nome_fantasia"`
	CNPJ                string             `json:"cnpj" db:"cnpj"`
	InscricaoEstadual   *string            `json:"inscricao_estadual" db:"inscricao_estadual"`
	Telefone            *string            `json:"telefone" db:"telefone"`
	Email               string             `json:"email" db:"email"`
	Logradouro          *string            `json:"logradouro" db:"logradouro"`
	Numero              *string            `json:"numero" db:"numero"`
	Complemento         *string            `json:"complemento" db:"complemento"`
	Bairro              *string            `json:"bairro" db:"bairro"`
	Cidade              *string            `json:"cidade" db:"cidade"`
	UF                  *string            `json:"uf" db:"uf"`
	CEP                 *string            `json:"cep" db:"cep"`
	NumeroRegistroMAPA  *string            `json:"numero_registro_mapa" db:"numero_registro_mapa"`
	ResponsavelTecnico  ResponsavelTecnico `json:"responsavel_tecnico" db:"responsavel_tecnico"`
	CursoCredencial     *string            `json:"curso_credencial" db:"curso_credencial"`
	Observacoes         *string            `json:"observacoes" db:"observacoes"`
	ServicosPrestados   []string           `json:"servicos_prestados" db:"servicos_prestados"`
	ServicosOutros      *string            `json:"servicos_outros" db:"servicos_outros"`
	LogoPath            *string            `json:"logo_path" db:"logo_path"`
	Configuracoes       CompanyDefaults    `json:"configuracoes" db:"configuracoes"`
	OnboardingCompleted bool               `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" db:"updated_at"`
}
