package services

import (
	"context"
	"testing"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClientServiceTestSuite struct {
	suite.Suite
	clientRepo *MockClientRepository
	cache      *MockCacheService
	service    ClientService
	companyID  uuid.UUID
	ctx        context.Context
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.clientRepo = &MockClientRepository{}
	suite.cache = &MockCacheService{}
	suite.service = NewClientService(suite.clientRepo, suite.cache)
	suite.companyID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ClientServiceTestSuite) TearDownTest() {
	suite.clientRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}

func (suite *ClientServiceTestSuite) validClient() *models.Client {
	return &models.Client{
		NomeRazaoSocial: "Fazenda Boa Vista Ltda",
		Municipio:       "Rio Verde",
		UF:              "GO",
	}
}

func (suite *ClientServiceTestSuite) TestCreateSuccess() {
	client := suite.validClient()
	suite.clientRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Client")).Return(nil)
	suite.cache.On("InvalidateCompanyCache", suite.ctx, suite.companyID).Return(nil)

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, client.ID)
	assert.Equal(suite.T(), suite.companyID, client.CompanyID)
}

func (suite *ClientServiceTestSuite) TestCreateMissingNome() {
	client := suite.validClient()
	client.NomeRazaoSocial = ""

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.EqualError(suite.T(), err, "nome/razão social is required")
}

func (suite *ClientServiceTestSuite) TestCreateMissingMunicipio() {
	client := suite.validClient()
	client.Municipio = ""

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.EqualError(suite.T(), err, "município is required")
}

func (suite *ClientServiceTestSuite) TestCreateInvalidUF() {
	client := suite.validClient()
	client.UF = "XX"

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "state code")
}

func (suite *ClientServiceTestSuite) TestCreateNormalizesCPF() {
	client := suite.validClient()
	doc := "123.456.789-01"
	client.CPFCNPJ = &doc
	suite.clientRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Client")).Return(nil)
	suite.cache.On("InvalidateCompanyCache", suite.ctx, suite.companyID).Return(nil)

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "12345678901", *client.CPFCNPJ)
}

func (suite *ClientServiceTestSuite) TestCreateNormalizesCNPJ() {
	client := suite.validClient()
	doc := "12.345.678/0001-90"
	client.CPFCNPJ = &doc
	suite.clientRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Client")).Return(nil)
	suite.cache.On("InvalidateCompanyCache", suite.ctx, suite.companyID).Return(nil)

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "12345678000190", *client.CPFCNPJ)
}

func (suite *ClientServiceTestSuite) TestCreateInvalidDocumentLength() {
	client := suite.validClient()
	doc := "12345"
	client.CPFCNPJ = &doc

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "cpf_cnpj")
}

func (suite *ClientServiceTestSuite) TestCreateWithoutDocument() {
	client := suite.validClient()
	client.CPFCNPJ = nil
	suite.clientRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Client")).Return(nil)
	suite.cache.On("InvalidateCompanyCache", suite.ctx, suite.companyID).Return(nil)

	err := suite.service.Create(suite.ctx, suite.companyID, client)

	assert.NoError(suite.T(), err)
}

func (suite *ClientServiceTestSuite) TestGetByIDCacheHit() {
	id := uuid.New()
	cached := &models.Client{ID: id, CompanyID: suite.companyID, NomeRazaoSocial: "Fazenda Boa Vista Ltda"}
	suite.cache.On("GetClient", suite.ctx, suite.companyID, id).Return(cached, nil)

	client, err := suite.service.GetByID(suite.ctx, suite.companyID, id)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, client)
	suite.clientRepo.AssertNotCalled(suite.T(), "GetByID")
}

func (suite *ClientServiceTestSuite) TestGetByIDCacheMissFillsCache() {
	id := uuid.New()
	stored := &models.Client{ID: id, CompanyID: suite.companyID, NomeRazaoSocial: "Fazenda Boa Vista Ltda"}
	suite.cache.On("GetClient", suite.ctx, suite.companyID, id).Return(nil, nil)
	suite.clientRepo.On("GetByID", suite.ctx, suite.companyID, id).Return(stored, nil)
	suite.cache.On("SetClient", suite.ctx, suite.companyID, stored, clientCacheTTL).Return(nil)

	client, err := suite.service.GetByID(suite.ctx, suite.companyID, id)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, client)
}

func (suite *ClientServiceTestSuite) TestUpdateChecksOwnershipFirst() {
	client := suite.validClient()
	client.ID = uuid.New()
	suite.clientRepo.On("GetByID", suite.ctx, suite.companyID, client.ID).
		Return(nil, pgx.ErrNoRows)

	err := suite.service.Update(suite.ctx, suite.companyID, client)

	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	suite.clientRepo.AssertNotCalled(suite.T(), "Update")
}

func (suite *ClientServiceTestSuite) TestUpdateEvictsCachedClient() {
	client := suite.validClient()
	client.ID = uuid.New()
	suite.clientRepo.On("GetByID", suite.ctx, suite.companyID, client.ID).
		Return(&models.Client{ID: client.ID, CompanyID: suite.companyID}, nil)
	suite.clientRepo.On("Update", suite.ctx, client).Return(nil)
	suite.cache.On("DeleteClient", suite.ctx, suite.companyID, client.ID).Return(nil)

	err := suite.service.Update(suite.ctx, suite.companyID, client)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.companyID, client.CompanyID)
}

func (suite *ClientServiceTestSuite) TestDeleteNotFound() {
	id := uuid.New()
	suite.clientRepo.On("GetByID", suite.ctx, suite.companyID, id).
		Return(nil, pgx.ErrNoRows)

	err := suite.service.Delete(suite.ctx, suite.companyID, id)

	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	suite.clientRepo.AssertNotCalled(suite.T(), "Delete")
}

func (suite *ClientServiceTestSuite) TestDeleteSuccess() {
	id := uuid.New()
	suite.clientRepo.On("GetByID", suite.ctx, suite.companyID, id).
		Return(&models.Client{ID: id, CompanyID: suite.companyID}, nil)
	suite.clientRepo.On("Delete", suite.ctx, suite.companyID, id).Return(nil)
	suite.cache.On("InvalidateCompanyCache", suite.ctx, suite.companyID).Return(nil)

	err := suite.service.Delete(suite.ctx, suite.companyID, id)

	assert.NoError(suite.T(), err)
}
