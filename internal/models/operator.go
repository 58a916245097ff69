package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator roles per Anexo XI.
var ValidOperatorRoles = map[string]bool{
	"piloto_remoto": true,
	"aplicador":     true,
	"aux_aplicacao": true,
	"rt":            true,
	"admin":         true,
}

var operatorRoleLabels = map[string]string{
	"piloto_remoto": "Piloto Remoto",
	"aplicador":     "Aplicador",
	"aux_aplicacao": "Aux de Aplicação",
	"rt":            "Responsável Técnico",
	"admin":         "Admin",
}

// OperatorRoleLabel returns the human-readable label for a role code,
// falling back to the code itself for unknown values.
func OperatorRoleLabel(funcao string) string {
	if label, ok := operatorRoleLabels[funcao]; ok {
		return label
	}
	return funcao
}

// Operator is a person performing a role in a spray application.
// Deactivation is a soft delete, mirroring Drone.
type Operator struct {
	ID                uuid.UUID `json:"id" db:"id"`
	CompanyID         uuid.UUID `json:"company_id" db:"company_id"`
	Nome              string    `json:"nome" db:"nome"`
	Funcao            string    `json:"funcao" db:"funcao"`
	DocumentoRegistro *string   `json:"documento_registro" db:"documento_registro"`
	Telefone          *string   `json:"telefone" db:"telefone"`
	Active            bool      `json:"active" db:"active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
