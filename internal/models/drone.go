package models

import (
	"time"

	"github.com/google/uuid"
)

// Drone is an aircraft asset. Deactivation is a soft delete: inactive drones
// stay out of selection lists but remain valid references from historical
// applications.
type Drone struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	CompanyID             uuid.UUID `json:"company_id" db:"company_id"`
	MarcaModelo           string    `json:"marca_modelo" db:"marca_modelo"`
	IdentificacaoRegistro string    `json:"identificacao_registro" db:"identificacao_registro"`
	CapacidadeTanque      *float64  `json:"capacidade_tanque" db:"capacidade_tanque"`
	Observacoes           *string   `json:"observacoes" db:"observacoes"`
	Active                bool      `json:"active" db:"active"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}
