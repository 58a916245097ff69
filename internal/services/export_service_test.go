package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExportServiceTestSuite struct {
	suite.Suite
	appRepo      *MockApplicationRepository
	clientRepo   *MockClientRepository
	droneRepo    *MockDroneRepository
	operatorRepo *MockOperatorRepository
	service      ExportService
	companyID    uuid.UUID
	ctx          context.Context
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.appRepo = &MockApplicationRepository{}
	suite.clientRepo = &MockClientRepository{}
	suite.droneRepo = &MockDroneRepository{}
	suite.operatorRepo = &MockOperatorRepository{}
	suite.service = NewExportService(suite.appRepo, suite.clientRepo, suite.droneRepo, suite.operatorRepo)
	suite.companyID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ExportServiceTestSuite) TearDownTest() {
	suite.appRepo.AssertExpectations(suite.T())
	suite.clientRepo.AssertExpectations(suite.T())
	suite.droneRepo.AssertExpectations(suite.T())
	suite.operatorRepo.AssertExpectations(suite.T())
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

// fixture builds one consistent application + referenced records.
func (suite *ExportServiceTestSuite) fixture(municipio, uf string) (*models.Application, *models.Client, *models.Drone, *models.Operator) {
	start := time.Date(2025, 4, 15, 6, 30, 0, 0, time.UTC)
	propriedade := "Fazenda Boa Vista"
	doc := "123.456.789-00"

	client := &models.Client{
		ID:                 uuid.New(),
		CompanyID:          suite.companyID,
		NomeRazaoSocial:    "João da Silva",
		CPFCNPJ:            &doc,
		PropriedadeFazenda: &propriedade,
		Municipio:          municipio,
		UF:                 uf,
	}
	drone := &models.Drone{
		ID:                    uuid.New(),
		CompanyID:             suite.companyID,
		MarcaModelo:           "DJI Agras T40",
		IdentificacaoRegistro: "PP-12345678",
		Active:                true,
	}
	operator := &models.Operator{
		ID:        uuid.New(),
		CompanyID: suite.companyID,
		Nome:      "Maria Souza",
		Funcao:    "piloto_remoto",
		Active:    true,
	}
	app := &models.Application{
		ID:                     uuid.New(),
		CompanyID:              suite.companyID,
		ClientID:               client.ID,
		DroneID:                drone.ID,
		OperatorID:             operator.ID,
		DataHoraInicio:         start,
		DataHoraTermino:        start.Add(40 * time.Minute),
		CoordenadasGeograficas: "-16.6869, -49.2648",
		CulturaTratada:         "Soja",
		AreaTratada:            35.5,
		TipoAtividade:          "agrotoxico",
		MarcaComercial:         "Fox Xpro",
		Volume:                 12,
		DosagemAplicada:        "0.4 L/ha",
		AlturaVoo:              3.5,
		Meteorologia: models.Meteorologia{
			Temperatura:     28.4,
			UmidadeRelativa: 62,
			DirecaoVento:    "NE",
			VelocidadeVento: 8.2,
		},
	}
	return app, client, drone, operator
}

func (suite *ExportServiceTestSuite) expectJoin(clients []*models.Client, drones []*models.Drone, operators []*models.Operator) {
	suite.clientRepo.On("ListAll", suite.ctx, suite.companyID).Return(clients, nil)
	suite.droneRepo.On("List", suite.ctx, suite.companyID, true).Return(drones, nil)
	suite.operatorRepo.On("List", suite.ctx, suite.companyID, true).Return(operators, nil)
}

func (suite *ExportServiceTestSuite) TestResolve_AttachesReferences() {
	app, client, drone, operator := suite.fixture("Goiânia", "GO")

	suite.appRepo.On("Search", suite.ctx, suite.companyID, (*models.ApplicationFilter)(nil)).
		Return([]*models.Application{app}, nil)
	suite.expectJoin([]*models.Client{client}, []*models.Drone{drone}, []*models.Operator{operator})

	resolved, err := suite.service.Resolve(suite.ctx, suite.companyID, nil)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resolved, 1)
	assert.Equal(suite.T(), client, resolved[0].Client)
	assert.Equal(suite.T(), drone, resolved[0].Drone)
	assert.Equal(suite.T(), operator, resolved[0].Operator)
}

func (suite *ExportServiceTestSuite) TestResolve_BrokenClientReference() {
	app, _, drone, operator := suite.fixture("Goiânia", "GO")

	suite.appRepo.On("Search", suite.ctx, suite.companyID, (*models.ApplicationFilter)(nil)).
		Return([]*models.Application{app}, nil)
	suite.expectJoin([]*models.Client{}, []*models.Drone{drone}, []*models.Operator{operator})

	resolved, err := suite.service.Resolve(suite.ctx, suite.companyID, nil)
	assert.Nil(suite.T(), resolved)

	var broken *ErrBrokenReference
	assert.ErrorAs(suite.T(), err, &broken)
	assert.Equal(suite.T(), app.ID, broken.ApplicationID)
	assert.Equal(suite.T(), "client", broken.Kind)
	assert.Equal(suite.T(), app.ClientID, broken.RefID)
}

func (suite *ExportServiceTestSuite) TestResolve_MunicipioFilterAppliedAfterJoin() {
	appGO, clientGO, drone, operator := suite.fixture("Rio Verde", "GO")
	appMT, clientMT, _, _ := suite.fixture("Sorriso", "MT")
	appMT.DroneID = drone.ID
	appMT.OperatorID = operator.ID

	filter := &models.ApplicationFilter{Municipio: "rio verde"}

	suite.appRepo.On("Search", suite.ctx, suite.companyID, filter).
		Return([]*models.Application{appGO, appMT}, nil)
	suite.expectJoin([]*models.Client{clientGO, clientMT}, []*models.Drone{drone}, []*models.Operator{operator})

	resolved, err := suite.service.Resolve(suite.ctx, suite.companyID, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resolved, 1)
	assert.Equal(suite.T(), "Rio Verde", resolved[0].Client.Municipio)
}

func (suite *ExportServiceTestSuite) TestResolve_UFFilterCaseInsensitiveExact() {
	appGO, clientGO, drone, operator := suite.fixture("Jataí", "GO")
	filter := &models.ApplicationFilter{UF: "go"}

	suite.appRepo.On("Search", suite.ctx, suite.companyID, filter).
		Return([]*models.Application{appGO}, nil)
	suite.expectJoin([]*models.Client{clientGO}, []*models.Drone{drone}, []*models.Operator{operator})

	resolved, err := suite.service.Resolve(suite.ctx, suite.companyID, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resolved, 1)
}

func (suite *ExportServiceTestSuite) TestResolve_PagingAppliedAfterLocationFilter() {
	// Three applications in the target city, one elsewhere. With limit 2 the
	// store query must run unpaged, otherwise the off-city row would consume a
	// slot and starve the page.
	drone := &models.Drone{ID: uuid.New(), CompanyID: suite.companyID, MarcaModelo: "XAG P100", IdentificacaoRegistro: "PP-999", Active: true}
	operator := &models.Operator{ID: uuid.New(), CompanyID: suite.companyID, Nome: "Carlos", Funcao: "aplicador", Active: true}

	inCity := &models.Client{ID: uuid.New(), CompanyID: suite.companyID, NomeRazaoSocial: "A", Municipio: "Cristalina", UF: "GO"}
	outCity := &models.Client{ID: uuid.New(), CompanyID: suite.companyID, NomeRazaoSocial: "B", Municipio: "Luziânia", UF: "GO"}

	mkApp := func(clientID uuid.UUID) *models.Application {
		return &models.Application{
			ID: uuid.New(), CompanyID: suite.companyID, ClientID: clientID,
			DroneID: drone.ID, OperatorID: operator.ID,
			DataHoraInicio: time.Now(), DataHoraTermino: time.Now().Add(time.Hour),
		}
	}
	apps := []*models.Application{mkApp(outCity.ID), mkApp(inCity.ID), mkApp(inCity.ID), mkApp(inCity.ID)}

	filter := &models.ApplicationFilter{Municipio: "Cristalina", Limit: 2}

	suite.appRepo.On("Search", suite.ctx, suite.companyID, mock.MatchedBy(func(f *models.ApplicationFilter) bool {
		return f != nil && f.Limit == 0 && f.Offset == 0 && f.Municipio == "Cristalina"
	})).Return(apps, nil)
	suite.expectJoin([]*models.Client{inCity, outCity}, []*models.Drone{drone}, []*models.Operator{operator})

	resolved, err := suite.service.Resolve(suite.ctx, suite.companyID, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resolved, 2)
	for _, r := range resolved {
		assert.Equal(suite.T(), "Cristalina", r.Client.Municipio)
	}
}

func (suite *ExportServiceTestSuite) TestExportCSV_HeaderAndRow() {
	app, client, drone, operator := suite.fixture("Goiânia", "GO")

	suite.appRepo.On("Search", suite.ctx, suite.companyID, (*models.ApplicationFilter)(nil)).
		Return([]*models.Application{app}, nil)
	suite.expectJoin([]*models.Client{client}, []*models.Drone{drone}, []*models.Operator{operator})

	data, err := suite.service.ExportCSV(suite.ctx, suite.companyID, nil)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), bytes.HasPrefix(data, []byte("\uFEFF")), "CSV must start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF")))).ReadAll()
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 2)

	header := records[0]
	assert.Len(suite.T(), header, 23)
	assert.Equal(suite.T(), "Data Início", header[0])
	assert.Equal(suite.T(), "Área (ha)", header[8])
	assert.Equal(suite.T(), "Função", header[17])
	assert.Equal(suite.T(), "Coordenadas", header[22])

	row := records[1]
	assert.Equal(suite.T(), "15/04/2025 06:30:00", row[0])
	assert.Equal(suite.T(), "15/04/2025 07:10:00", row[1])
	assert.Equal(suite.T(), "João da Silva", row[2])
	assert.Equal(suite.T(), "Fazenda Boa Vista", row[3])
	assert.Equal(suite.T(), "35.5", row[8])
	assert.Equal(suite.T(), "Piloto Remoto", row[17])
	assert.Equal(suite.T(), "-16.6869, -49.2648", row[22])
}

func (suite *ExportServiceTestSuite) TestExportCSV_NoRows() {
	suite.appRepo.On("Search", suite.ctx, suite.companyID, (*models.ApplicationFilter)(nil)).
		Return([]*models.Application{}, nil)

	data, err := suite.service.ExportCSV(suite.ctx, suite.companyID, nil)
	assert.NoError(suite.T(), err)

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF")))).ReadAll()
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 1) // header only
}

func (suite *ExportServiceTestSuite) TestExportXLSX_BrokenReferencePropagates() {
	app, _, drone, operator := suite.fixture("Goiânia", "GO")

	suite.appRepo.On("Search", suite.ctx, suite.companyID, (*models.ApplicationFilter)(nil)).
		Return([]*models.Application{app}, nil)
	suite.expectJoin([]*models.Client{}, []*models.Drone{drone}, []*models.Operator{operator})

	data, err := suite.service.ExportXLSX(suite.ctx, suite.companyID, nil)
	assert.Nil(suite.T(), data)

	var broken *ErrBrokenReference
	assert.ErrorAs(suite.T(), err, &broken)
}
