package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ApplicationRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       ApplicationRepository
	companyID1 uuid.UUID
	companyID2 uuid.UUID
	appID      uuid.UUID
	context    context.Context
}

func (suite *ApplicationRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewApplicationRepo(mock)
	suite.companyID1 = uuid.New()
	suite.companyID2 = uuid.New()
	suite.appID = uuid.New()
	suite.context = context.Background()
}

func (suite *ApplicationRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestApplicationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationRepoTestSuite))
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_NilFilter() {
	where, args := BuildApplicationPredicate(suite.companyID1, nil)
	assert.Equal(suite.T(), "company_id = $1", where)
	assert.Equal(suite.T(), []any{suite.companyID1}, args)
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_EmptyFilter() {
	where, args := BuildApplicationPredicate(suite.companyID1, &models.ApplicationFilter{})
	assert.Equal(suite.T(), "company_id = $1", where)
	assert.Len(suite.T(), args, 1)
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_DateRange() {
	from := time.Date(2025, 3, 10, 14, 37, 0, 0, time.UTC)
	to := time.Date(2025, 3, 20, 8, 5, 0, 0, time.UTC)
	filter := &models.ApplicationFilter{DateFrom: &from, DateTo: &to}

	where, args := BuildApplicationPredicate(suite.companyID1, filter)

	assert.Equal(suite.T(), "company_id = $1 AND data_hora_inicio >= $2 AND data_hora_inicio <= $3", where)
	assert.Len(suite.T(), args, 3)
	// The start date is floored to midnight and the end date is pushed to the
	// last second of its day, so a bare end date is inclusive.
	assert.Equal(suite.T(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), args[1])
	assert.Equal(suite.T(), time.Date(2025, 3, 20, 23, 59, 59, 0, time.UTC), args[2])
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_EntityFilters() {
	clientID := uuid.New()
	droneID := uuid.New()
	operatorID := uuid.New()
	filter := &models.ApplicationFilter{
		ClientID:   &clientID,
		DroneID:    &droneID,
		OperatorID: &operatorID,
	}

	where, args := BuildApplicationPredicate(suite.companyID1, filter)

	assert.Equal(suite.T(), "company_id = $1 AND client_id = $2 AND drone_id = $3 AND operator_id = $4", where)
	assert.Equal(suite.T(), []any{suite.companyID1, clientID, droneID, operatorID}, args)
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_ActivityType() {
	filter := &models.ApplicationFilter{TipoAtividade: "agrotoxico"}
	where, args := BuildApplicationPredicate(suite.companyID1, filter)
	assert.Equal(suite.T(), "company_id = $1 AND tipo_atividade = $2", where)
	assert.Equal(suite.T(), "agrotoxico", args[1])
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_UnknownActivityTypeDropped() {
	filter := &models.ApplicationFilter{TipoAtividade: "pulverizacao-magica"}
	where, args := BuildApplicationPredicate(suite.companyID1, filter)
	assert.Equal(suite.T(), "company_id = $1", where)
	assert.Len(suite.T(), args, 1)
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_CulturaSubstring() {
	filter := &models.ApplicationFilter{Cultura: "Soja"}
	where, args := BuildApplicationPredicate(suite.companyID1, filter)
	assert.Equal(suite.T(), "company_id = $1 AND cultura_tratada ILIKE $2", where)
	assert.Equal(suite.T(), "%Soja%", args[1])
}

func (suite *ApplicationRepoTestSuite) TestBuildPredicate_MunicipioAndUFIgnored() {
	// Municipality and UF live on the joined client record; the predicate
	// must not try to resolve them against the applications table.
	filter := &models.ApplicationFilter{Municipio: "Rio Verde", UF: "GO"}
	where, args := BuildApplicationPredicate(suite.companyID1, filter)
	assert.Equal(suite.T(), "company_id = $1", where)
	assert.Len(suite.T(), args, 1)
}

func applicationRows(apps ...*models.Application) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "company_id", "client_id", "drone_id", "operator_id",
		"data_hora_inicio", "data_hora_termino", "coordenadas_geograficas",
		"cultura_tratada", "area_tratada", "tipo_atividade", "marca_comercial",
		"volume", "dosagem_aplicada", "altura_voo", "meteorologia",
		"relatorio_operacional", "evidencias", "created_by", "created_at", "updated_at",
	})
	for _, app := range apps {
		rows.AddRow(
			app.ID, app.CompanyID, app.ClientID, app.DroneID, app.OperatorID,
			app.DataHoraInicio, app.DataHoraTermino, app.CoordenadasGeograficas,
			app.CulturaTratada, app.AreaTratada, app.TipoAtividade, app.MarcaComercial,
			app.Volume, app.DosagemAplicada, app.AlturaVoo, app.Meteorologia,
			app.RelatorioOperacional, app.Evidencias, app.CreatedBy, app.CreatedAt, app.UpdatedAt,
		)
	}
	return rows
}

func sampleApplication(companyID uuid.UUID) *models.Application {
	now := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)
	return &models.Application{
		ID:                     uuid.New(),
		CompanyID:              companyID,
		ClientID:               uuid.New(),
		DroneID:                uuid.New(),
		OperatorID:             uuid.New(),
		DataHoraInicio:         now,
		DataHoraTermino:        now.Add(45 * time.Minute),
		CoordenadasGeograficas: "-17.7923, -50.9192",
		CulturaTratada:         "Soja",
		AreaTratada:            42.5,
		TipoAtividade:          "agrotoxico",
		MarcaComercial:         "Engeo Pleno",
		Volume:                 10,
		DosagemAplicada:        "0.25 L/ha",
		AlturaVoo:              3,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func (suite *ApplicationRepoTestSuite) TestGetByID_Success() {
	app := sampleApplication(suite.companyID1)
	app.ID = suite.appID

	suite.mock.ExpectQuery(`SELECT (.+) FROM applications\s+WHERE company_id = \$1 AND id = \$2`).
		WithArgs(suite.companyID1, suite.appID).
		WillReturnRows(applicationRows(app))

	result, err := suite.repo.GetByID(suite.context, suite.companyID1, suite.appID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.appID, result.ID)
	assert.Equal(suite.T(), "Soja", result.CulturaTratada)
	assert.Equal(suite.T(), 42.5, result.AreaTratada)
}

func (suite *ApplicationRepoTestSuite) TestGetByID_WrongCompany() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM applications\s+WHERE company_id = \$1 AND id = \$2`).
		WithArgs(suite.companyID2, suite.appID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.companyID2, suite.appID)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), result)
}

func (suite *ApplicationRepoTestSuite) TestSearch_NoFilterNoLimit() {
	app1 := sampleApplication(suite.companyID1)
	app2 := sampleApplication(suite.companyID1)

	suite.mock.ExpectQuery(`SELECT (.+) FROM applications\s+WHERE company_id = \$1\s+ORDER BY data_hora_inicio DESC`).
		WithArgs(suite.companyID1).
		WillReturnRows(applicationRows(app1, app2))

	result, err := suite.repo.Search(suite.context, suite.companyID1, nil)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
}

func (suite *ApplicationRepoTestSuite) TestSearch_WithLimitAndOffset() {
	app := sampleApplication(suite.companyID1)
	filter := &models.ApplicationFilter{Limit: 10, Offset: 20}

	suite.mock.ExpectQuery(`ORDER BY data_hora_inicio DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(suite.companyID1, 10, 20).
		WillReturnRows(applicationRows(app))

	result, err := suite.repo.Search(suite.context, suite.companyID1, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
}

func (suite *ApplicationRepoTestSuite) TestSearch_FilterArgsOrder() {
	clientID := uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := &models.ApplicationFilter{DateFrom: &from, ClientID: &clientID, Cultura: "milho"}

	suite.mock.ExpectQuery(`WHERE company_id = \$1 AND data_hora_inicio >= \$2 AND client_id = \$3 AND cultura_tratada ILIKE \$4`).
		WithArgs(suite.companyID1, from, clientID, "%milho%").
		WillReturnRows(applicationRows())

	result, err := suite.repo.Search(suite.context, suite.companyID1, filter)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *ApplicationRepoTestSuite) TestDelete_ScopedToCompany() {
	suite.mock.ExpectExec(`DELETE FROM applications WHERE company_id = \$1 AND id = \$2`).
		WithArgs(suite.companyID1, suite.appID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.companyID1, suite.appID)
	assert.NoError(suite.T(), err)
}

func (suite *ApplicationRepoTestSuite) TestCountMatching() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications WHERE company_id = \$1`).
		WithArgs(suite.companyID1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := suite.repo.CountMatching(suite.context, suite.companyID1, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, count)
}

func (suite *ApplicationRepoTestSuite) TestCountStartedBetween() {
	from := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications WHERE company_id = \$1 AND data_hora_inicio >= \$2 AND data_hora_inicio < \$3`).
		WithArgs(suite.companyID1, from, to).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.CountStartedBetween(suite.context, suite.companyID1, from, to)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}
