package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ErrBrokenReference is returned when an application points at a client,
// drone or operator that no longer exists in the tenant. Exports and reports
// fail as a whole rather than emit rows with holes.
type ErrBrokenReference struct {
	ApplicationID uuid.UUID
	Kind          string
	RefID         uuid.UUID
}

func (e *ErrBrokenReference) Error() string {
	return fmt.Sprintf("application %s references missing %s %s", e.ApplicationID, e.Kind, e.RefID)
}

// ResolvedApplication is an application with its referenced records attached.
type ResolvedApplication struct {
	Application *models.Application
	Client      *models.Client
	Drone       *models.Drone
	Operator    *models.Operator
}

// exportColumns is the fixed header of the Anexo XI spreadsheet exports, in
// the order field inspectors expect.
var exportColumns = []string{
	"Data Início",
	"Data Término",
	"Cliente",
	"Propriedade",
	"Município",
	"UF",
	"CPF/CNPJ",
	"Cultura",
	"Área (ha)",
	"Tipo Atividade",
	"Produto",
	"Volume",
	"Dosagem",
	"Altura Voo (m)",
	"Drone",
	"Registro ANAC",
	"Operador",
	"Função",
	"Temperatura (°C)",
	"Umidade (%)",
	"Direção Vento",
	"Velocidade Vento (km/h)",
	"Coordenadas",
}

type ExportService interface {
	// Resolve runs the filter, joins each matching application to its
	// client/drone/operator and applies the municipality/UF criteria on the
	// joined records. Limit/offset are applied only after that, so post-join
	// filtering never eats into a page.
	Resolve(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]*ResolvedApplication, error)
	ExportCSV(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]byte, error)
	ExportXLSX(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]byte, error)
}

type exportService struct {
	applicationRepo repositories.ApplicationRepository
	clientRepo      repositories.ClientRepository
	droneRepo       repositories.DroneRepository
	operatorRepo    repositories.OperatorRepository
}

func NewExportService(applicationRepo repositories.ApplicationRepository, clientRepo repositories.ClientRepository, droneRepo repositories.DroneRepository, operatorRepo repositories.OperatorRepository) ExportService {
	return &exportService{
		applicationRepo: applicationRepo,
		clientRepo:      clientRepo,
		droneRepo:       droneRepo,
		operatorRepo:    operatorRepo,
	}
}

func (s *exportService) Resolve(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]*ResolvedApplication, error) {
	// The store predicate runs without limit/offset: municipality and UF are
	// filtered after the join, and paging before filtering would drop rows.
	storeFilter := filter
	if filter != nil && (filter.Limit > 0 || filter.Offset > 0) {
		unpaged := *filter
		unpaged.Limit = 0
		unpaged.Offset = 0
		storeFilter = &unpaged
	}

	apps, err := s.applicationRepo.Search(ctx, companyID, storeFilter)
	if err != nil {
		return nil, err
	}

	resolved, err := s.join(ctx, companyID, apps)
	if err != nil {
		return nil, err
	}

	if filter != nil {
		resolved = filterByClientLocation(resolved, filter.Municipio, filter.UF)
		resolved = page(resolved, filter.Limit, filter.Offset)
	}
	return resolved, nil
}

// join attaches client/drone/operator records to each application. Referenced
// records are loaded once per tenant and matched by ID; a missing record
// fails the whole batch.
func (s *exportService) join(ctx context.Context, companyID uuid.UUID, apps []*models.Application) ([]*ResolvedApplication, error) {
	if len(apps) == 0 {
		return nil, nil
	}

	clients, err := s.clientRepo.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	drones, err := s.droneRepo.List(ctx, companyID, true)
	if err != nil {
		return nil, err
	}
	operators, err := s.operatorRepo.List(ctx, companyID, true)
	if err != nil {
		return nil, err
	}

	clientsByID := make(map[uuid.UUID]*models.Client, len(clients))
	for _, c := range clients {
		clientsByID[c.ID] = c
	}
	dronesByID := make(map[uuid.UUID]*models.Drone, len(drones))
	for _, d := range drones {
		dronesByID[d.ID] = d
	}
	operatorsByID := make(map[uuid.UUID]*models.Operator, len(operators))
	for _, o := range operators {
		operatorsByID[o.ID] = o
	}

	resolved := make([]*ResolvedApplication, 0, len(apps))
	for _, app := range apps {
		client, ok := clientsByID[app.ClientID]
		if !ok {
			return nil, &ErrBrokenReference{ApplicationID: app.ID, Kind: "client", RefID: app.ClientID}
		}
		drone, ok := dronesByID[app.DroneID]
		if !ok {
			return nil, &ErrBrokenReference{ApplicationID: app.ID, Kind: "drone", RefID: app.DroneID}
		}
		operator, ok := operatorsByID[app.OperatorID]
		if !ok {
			return nil, &ErrBrokenReference{ApplicationID: app.ID, Kind: "operator", RefID: app.OperatorID}
		}
		resolved = append(resolved, &ResolvedApplication{
			Application: app,
			Client:      client,
			Drone:       drone,
			Operator:    operator,
		})
	}
	return resolved, nil
}

func filterByClientLocation(resolved []*ResolvedApplication, municipio, uf string) []*ResolvedApplication {
	if municipio == "" && uf == "" {
		return resolved
	}
	out := make([]*ResolvedApplication, 0, len(resolved))
	for _, r := range resolved {
		if municipio != "" && !strings.Contains(strings.ToLower(r.Client.Municipio), strings.ToLower(municipio)) {
			continue
		}
		if uf != "" && !strings.EqualFold(r.Client.UF, uf) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func page(resolved []*ResolvedApplication, limit, offset int) []*ResolvedApplication {
	if offset > 0 {
		if offset >= len(resolved) {
			return nil
		}
		resolved = resolved[offset:]
	}
	if limit > 0 && limit < len(resolved) {
		resolved = resolved[:limit]
	}
	return resolved
}

func exportRow(r *ResolvedApplication) []string {
	app := r.Application
	return []string{
		formatDateTimeBR(app.DataHoraInicio),
		formatDateTimeBR(app.DataHoraTermino),
		r.Client.NomeRazaoSocial,
		common.SafeString(r.Client.PropriedadeFazenda),
		r.Client.Municipio,
		r.Client.UF,
		common.SafeString(r.Client.CPFCNPJ),
		app.CulturaTratada,
		formatFloat(app.AreaTratada),
		app.TipoAtividade,
		app.MarcaComercial,
		formatFloat(app.Volume),
		app.DosagemAplicada,
		formatFloat(app.AlturaVoo),
		r.Drone.MarcaModelo,
		r.Drone.IdentificacaoRegistro,
		r.Operator.Nome,
		models.OperatorRoleLabel(r.Operator.Funcao),
		formatFloat(app.Meteorologia.Temperatura),
		formatFloat(app.Meteorologia.UmidadeRelativa),
		app.Meteorologia.DirecaoVento,
		formatFloat(app.Meteorologia.VelocidadeVento),
		app.CoordenadasGeograficas,
	}
}

func (s *exportService) ExportCSV(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]byte, error) {
	resolved, err := s.Resolve(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	// BOM keeps Excel from mangling the accented headers.
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, r := range resolved {
		if err := w.Write(exportRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportXLSX(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]byte, error) {
	resolved, err := s.Resolve(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Aplicações"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for rowIdx, r := range resolved {
		for colIdx, value := range exportRow(r) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDateTimeBR(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
