package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity types mandated by MAPA Portaria 298/2021, art. 10.
var ValidActivityTypes = map[string]bool{
	"agrotoxico":   true,
	"fertilizante": true,
	"inoculante":   true,
	"corretivo":    true,
	"semeadura":    true,
	"outros":       true,
}

// Meteorologia is the weather snapshot recorded at application time.
type Meteorologia struct {
	Temperatura     float64 `json:"temperatura"`
	UmidadeRelativa float64 `json:"umidade_relativa"`
	DirecaoVento    string  `json:"direcao_vento"`
	VelocidadeVento float64 `json:"velocidade_vento"`
}

// ReceituarioAgronomico is the agronomic prescription reference. The PDF
// section for it is rendered only when Numero is filled in.
type ReceituarioAgronomico struct {
	Numero      string     `json:"numero,omitempty"`
	DataEmissao *time.Time `json:"data_emissao,omitempty"`
}

// ParametrosBasicos carries the spraying-equipment operating parameters and
// optional min/max weather thresholds of the Anexo XI block.
type ParametrosBasicos struct {
	TemperaturaMax     *float64 `json:"temperatura_max,omitempty"`
	TemperaturaMin     *float64 `json:"temperatura_min,omitempty"`
	UmidadeRelativaMin *float64 `json:"umidade_relativa_min,omitempty"`
	VelocidadeVentoMax *float64 `json:"velocidade_vento_max,omitempty"`
	Equipamento        string   `json:"equipamento,omitempty"`
	Modelo             string   `json:"modelo,omitempty"`
	Tipo               string   `json:"tipo,omitempty"`
	Angulo             string   `json:"angulo,omitempty"`
	AlturaVoo          *float64 `json:"altura_voo,omitempty"`
	LarguraFaixa       *float64 `json:"largura_faixa,omitempty"`
}

// Assinatura is one signature block (name + registration + optional image path).
type Assinatura struct {
	Nome       string `json:"nome,omitempty"`
	Registro   string `json:"registro,omitempty"`
	Assinatura string `json:"assinatura,omitempty"`
}

// Assinaturas holds the two Anexo XI signature blocks.
type Assinaturas struct {
	ResponsavelTecnico Assinatura `json:"responsavel_tecnico"`
	Aplicador          Assinatura `json:"aplicador"`
}

// RelatorioOperacional is the independently editable Anexo XI block embedded
// in an application. Every field is an optional override: the report composer
// falls back to the joined client/company/operator record, then to "N/A".
type RelatorioOperacional struct {
	Contratante        string                `json:"contratante,omitempty"`
	Propriedade        string                `json:"propriedade,omitempty"`
	Localizacao        string                `json:"localizacao,omitempty"`
	RegistroMAPA       string                `json:"registro_mapa,omitempty"`
	Municipio          string                `json:"municipio,omitempty"`
	UF                 string                `json:"uf,omitempty"`
	CPFCNPJ            string                `json:"cpf_cnpj,omitempty"`
	Produto            string                `json:"produto,omitempty"`
	Formulacao         string                `json:"formulacao,omitempty"`
	Dosagem            string                `json:"dosagem,omitempty"`
	ClasseToxicologica string                `json:"classe_toxicologica,omitempty"`
	Adjuvante          string                `json:"adjuvante,omitempty"`
	Volume             string                `json:"volume,omitempty"`
	Outros             string                `json:"outros,omitempty"`
	Receituario        ReceituarioAgronomico `json:"receituario_agronomico"`
	ParametrosBasicos  ParametrosBasicos     `json:"parametros_basicos"`
	Croqui             string                `json:"croqui,omitempty"`
	Observacoes        string                `json:"observacoes,omitempty"`
	Assinaturas        Assinaturas           `json:"assinaturas"`
}

// Application is the central fact record: one spray event performed for a
// client, with a drone, by an operator.
type Application struct {
	ID                     uuid.UUID            `json:"id" db:"id"`
	CompanyID              uuid.UUID            `json:"company_id" db:"company_id"`
	ClientID               uuid.UUID            `json:"client_id" db:"client_id"`
	DroneID                uuid.UUID            `json:"drone_id" db:"drone_id"`
	OperatorID             uuid.UUID            `json:"operator_id" db:"operator_id"`
	DataHoraInicio         time.Time            `json:"data_hora_inicio" db:"data_hora_inicio"`
	DataHoraTermino        time.Time            `json:"data_hora_termino" db:"data_hora_termino"`
	CoordenadasGeograficas string               `json:"coordenadas_geograficas" db:"coordenadas_geograficas"`
	CulturaTratada         string               `json:"cultura_tratada" db:"cultura_tratada"`
	AreaTratada            float64              `json:"area_tratada" db:"area_tratada"` // hectares
	TipoAtividade          string               `json:"tipo_atividade" db:"tipo_atividade"`
	MarcaComercial         string               `json:"marca_comercial" db:"marca_comercial"`
	Volume                 float64              `json:"volume" db:"volume"`
	DosagemAplicada        string               `json:"dosagem_aplicada" db:"dosagem_aplicada"`
	AlturaVoo              float64              `json:"altura_voo" db:"altura_voo"`
	Meteorologia           Meteorologia         `json:"meteorologia" db:"meteorologia"`
	RelatorioOperacional   RelatorioOperacional `json:"relatorio_operacional" db:"relatorio_operacional"`
	Evidencias             []uuid.UUID          `json:"evidencias" db:"evidencias"`
	CreatedBy              *uuid.UUID           `json:"created_by" db:"created_by"`
	CreatedAt              time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at" db:"updated_at"`
}

// ApplicationFilter holds the all-optional report/export filter criteria.
// Nil/empty fields impose no constraint. Municipality and UF are not part of
// the store predicate: they live on the joined client record and are applied
// in memory after join resolution (before any result limit).
type ApplicationFilter struct {
	DateFrom      *time.Time `json:"date_from,omitempty"` // start of day, inclusive
	DateTo        *time.Time `json:"date_to,omitempty"`   // end of that calendar day, inclusive
	ClientID      *uuid.UUID `json:"client_id,omitempty"`
	DroneID       *uuid.UUID `json:"drone_id,omitempty"`
	OperatorID    *uuid.UUID `json:"operator_id,omitempty"`
	TipoAtividade string     `json:"tipo_atividade,omitempty"`
	Cultura       string     `json:"cultura,omitempty"` // case-insensitive substring
	Municipio     string     `json:"municipio,omitempty"`
	UF            string     `json:"uf,omitempty"`
	Limit         int        `json:"limit,omitempty"`
	Offset        int        `json:"offset,omitempty"`
}
