package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// ReportService renders the Anexo XI PDF documents.
type ReportService interface {
	// OperationalReport renders the single-application Relatório Operacional
	// (MAPA Portaria 298/2021, Anexo XI).
	OperationalReport(ctx context.Context, companyID, applicationID uuid.UUID) ([]byte, error)
	// ConsolidatedReport renders a cover page plus a summary of every
	// application matching the filter.
	ConsolidatedReport(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]byte, error)
}

type reportService struct {
	applicationRepo repositories.ApplicationRepository
	clientRepo      repositories.ClientRepository
	droneRepo       repositories.DroneRepository
	operatorRepo    repositories.OperatorRepository
	companyRepo     repositories.CompanyRepository
	exportService   ExportService
	minioService    MinioService
}

func NewReportService(applicationRepo repositories.ApplicationRepository, clientRepo repositories.ClientRepository, droneRepo repositories.DroneRepository, operatorRepo repositories.OperatorRepository, companyRepo repositories.CompanyRepository, exportService ExportService, minioService MinioService) ReportService {
	return &reportService{
		applicationRepo: applicationRepo,
		clientRepo:      clientRepo,
		droneRepo:       droneRepo,
		operatorRepo:    operatorRepo,
		companyRepo:     companyRepo,
		exportService:   exportService,
		minioService:    minioService,
	}
}

// firstNonEmpty implements the override -> joined record -> "N/A" fallback
// chain used throughout the Anexo XI layout.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "N/A"
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrNA(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return formatFloat(*p)
}

const (
	pdfMarginX = 15.0
	pdfMarginY = 15.0
)

//go:embed assets/default_logo.png
var defaultLogo []byte

// newReportPDF sets up an A4 portrait document and stamps a logo top-left:
// the company logo from object storage when one is configured and readable,
// otherwise the built-in default. The returned Y is where the title should
// start: below the logo when one was drawn.
func (s *reportService) newReportPDF(ctx context.Context, company *models.Company) (*gofpdf.Fpdf, func(string) string, float64) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginX, pdfMarginY, pdfMarginX)
	pdf.SetAutoPageBreak(true, pdfMarginY)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	titleY := pdfMarginY
	logoDrawn := false
	if company.LogoPath != nil && *company.LogoPath != "" {
		data, err := s.minioService.DownloadObject(ctx, companyFilesBucket, *company.LogoPath)
		if err == nil && len(data) > 0 {
			imageType := strings.TrimPrefix(strings.ToLower(filepath.Ext(*company.LogoPath)), ".")
			if imageType == "jpg" {
				imageType = "jpeg"
			}
			opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
			pdf.RegisterImageOptionsReader("company-logo", opts, bytes.NewReader(data))
			if pdf.Ok() {
				pdf.ImageOptions("company-logo", pdfMarginX, pdfMarginY, 35, 0, false, opts, 0, "")
				titleY = 50
				logoDrawn = true
			}
		}
		// A missing or unreadable logo never blocks report generation.
	}
	if !logoDrawn && len(defaultLogo) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "png", ReadDpi: true}
		pdf.RegisterImageOptionsReader("default-logo", opts, bytes.NewReader(defaultLogo))
		if pdf.Ok() {
			pdf.ImageOptions("default-logo", pdfMarginX, pdfMarginY, 35, 0, false, opts, 0, "")
			titleY = 50
		}
	}
	return pdf, tr, titleY
}

func sectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
}

func sectionLine(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetX(pdfMarginX + 4)
	pdf.MultiCell(0, 5, tr(text), "", "L", false)
}

func reportFooter(pdf *gofpdf.Fpdf, tr func(string) string, company *models.Company) {
	pdf.SetY(-22)
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("Gerado em %s", formatDateTimeBR(time.Now()))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("%s - %s", company.RazaoSocial, company.CNPJ)), "", 1, "C", false, 0, "")
}

func (s *reportService) OperationalReport(ctx context.Context, companyID, applicationID uuid.UUID) ([]byte, error) {
	app, err := s.applicationRepo.GetByID(ctx, companyID, applicationID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, companyID, app.ClientID)
	if err != nil {
		return nil, &ErrBrokenReference{ApplicationID: app.ID, Kind: "client", RefID: app.ClientID}
	}
	drone, err := s.droneRepo.GetByID(ctx, companyID, app.DroneID)
	if err != nil {
		return nil, &ErrBrokenReference{ApplicationID: app.ID, Kind: "drone", RefID: app.DroneID}
	}
	operator, err := s.operatorRepo.GetByID(ctx, companyID, app.OperatorID)
	if err != nil {
		return nil, &ErrBrokenReference{ApplicationID: app.ID, Kind: "operator", RefID: app.OperatorID}
	}

	pdf, tr, titleY := s.newReportPDF(ctx, company)
	ro := app.RelatorioOperacional

	pdf.SetY(titleY)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("RELATÓRIO OPERACIONAL DE APLICAÇÃO AÉREA"), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 9)

	sectionTitle(pdf, tr, "1. EMPRESA/PRESTADOR DE SERVIÇO:")
	sectionLine(pdf, tr, fmt.Sprintf("Razão Social: %s", company.RazaoSocial))
	sectionLine(pdf, tr, fmt.Sprintf("CNPJ: %s", company.CNPJ))
	sectionLine(pdf, tr, fmt.Sprintf("Registro MAPA: %s", firstNonEmpty(ro.RegistroMAPA, strOrEmpty(company.NumeroRegistroMAPA))))
	sectionLine(pdf, tr, fmt.Sprintf("Endereço: %s, %s - %s", strOrEmpty(company.Logradouro), strOrEmpty(company.Numero), strOrEmpty(company.Bairro)))
	sectionLine(pdf, tr, fmt.Sprintf("%s/%s - CEP: %s", strOrEmpty(company.Cidade), strOrEmpty(company.UF), strOrEmpty(company.CEP)))
	sectionLine(pdf, tr, fmt.Sprintf("Telefone: %s", strOrEmpty(company.Telefone)))
	pdf.Ln(3)

	sectionTitle(pdf, tr, "2. CONTRATANTE/PROPRIEDADE:")
	sectionLine(pdf, tr, fmt.Sprintf("Nome/Razão Social: %s", firstNonEmpty(ro.Contratante, client.NomeRazaoSocial)))
	sectionLine(pdf, tr, fmt.Sprintf("CPF/CNPJ: %s", firstNonEmpty(ro.CPFCNPJ, strOrEmpty(client.CPFCNPJ))))
	sectionLine(pdf, tr, fmt.Sprintf("Propriedade/Fazenda: %s", firstNonEmpty(ro.Propriedade, strOrEmpty(client.PropriedadeFazenda))))
	sectionLine(pdf, tr, fmt.Sprintf("Localização: %s", firstNonEmpty(ro.Localizacao, strOrEmpty(client.EnderecoLocalizacao))))
	sectionLine(pdf, tr, fmt.Sprintf("Município: %s", firstNonEmpty(ro.Municipio, client.Municipio)))
	sectionLine(pdf, tr, fmt.Sprintf("UF: %s", firstNonEmpty(ro.UF, client.UF)))
	pdf.Ln(3)

	unidades := company.Configuracoes.Unidades
	if unidades == "" {
		unidades = "L/ha"
	}
	sectionTitle(pdf, tr, "3. PRODUTO APLICADO:")
	sectionLine(pdf, tr, fmt.Sprintf("Marca Comercial: %s", app.MarcaComercial))
	sectionLine(pdf, tr, fmt.Sprintf("Formulação: %s", firstNonEmpty(ro.Formulacao)))
	sectionLine(pdf, tr, fmt.Sprintf("Dosagem: %s", app.DosagemAplicada))
	sectionLine(pdf, tr, fmt.Sprintf("Classe Toxicológica: %s", firstNonEmpty(ro.ClasseToxicologica)))
	sectionLine(pdf, tr, fmt.Sprintf("Adjuvante: %s", firstNonEmpty(ro.Adjuvante)))
	sectionLine(pdf, tr, fmt.Sprintf("Volume: %s %s", firstNonEmpty(ro.Volume, formatFloat(app.Volume)), unidades))
	sectionLine(pdf, tr, fmt.Sprintf("Outros: %s", firstNonEmpty(ro.Outros)))
	pdf.Ln(3)

	// Rendered only when a prescription number was recorded.
	if ro.Receituario.Numero != "" {
		sectionTitle(pdf, tr, "4. RECEITUÁRIO AGRONÔMICO:")
		sectionLine(pdf, tr, fmt.Sprintf("Número: %s", ro.Receituario.Numero))
		emissao := "N/A"
		if ro.Receituario.DataEmissao != nil {
			emissao = ro.Receituario.DataEmissao.Format("02/01/2006")
		}
		sectionLine(pdf, tr, fmt.Sprintf("Data de Emissão: %s", emissao))
		pdf.Ln(3)
	}

	sectionTitle(pdf, tr, "5. DADOS DA APLICAÇÃO:")
	sectionLine(pdf, tr, fmt.Sprintf("Data e Hora de Início: %s", formatDateTimeBR(app.DataHoraInicio)))
	sectionLine(pdf, tr, fmt.Sprintf("Data e Hora de Término: %s", formatDateTimeBR(app.DataHoraTermino)))
	sectionLine(pdf, tr, fmt.Sprintf("Cultura Tratada: %s", app.CulturaTratada))
	sectionLine(pdf, tr, fmt.Sprintf("Área Tratada: %s hectares", formatFloat(app.AreaTratada)))
	sectionLine(pdf, tr, fmt.Sprintf("Coordenadas Geográficas: %s", app.CoordenadasGeograficas))
	sectionLine(pdf, tr, fmt.Sprintf("Tipo de Atividade: %s", app.TipoAtividade))
	pdf.Ln(3)

	sectionTitle(pdf, tr, "6. PARÂMETROS METEOROLÓGICOS:")
	sectionLine(pdf, tr, fmt.Sprintf("Temperatura: %s°C", formatFloat(app.Meteorologia.Temperatura)))
	sectionLine(pdf, tr, fmt.Sprintf("Umidade Relativa do Ar: %s%%", formatFloat(app.Meteorologia.UmidadeRelativa)))
	sectionLine(pdf, tr, fmt.Sprintf("Direção do Vento: %s", app.Meteorologia.DirecaoVento))
	sectionLine(pdf, tr, fmt.Sprintf("Velocidade do Vento: %s km/h", formatFloat(app.Meteorologia.VelocidadeVento)))
	params := ro.ParametrosBasicos
	sectionLine(pdf, tr, fmt.Sprintf("Temperatura Máxima: %s°C", floatOrNA(params.TemperaturaMax)))
	sectionLine(pdf, tr, fmt.Sprintf("Temperatura Mínima: %s°C", floatOrNA(params.TemperaturaMin)))
	sectionLine(pdf, tr, fmt.Sprintf("Umidade Relativa Mínima: %s%%", floatOrNA(params.UmidadeRelativaMin)))
	sectionLine(pdf, tr, fmt.Sprintf("Velocidade Máxima do Vento: %s km/h", floatOrNA(params.VelocidadeVentoMax)))
	pdf.Ln(3)

	sectionTitle(pdf, tr, "7. EQUIPAMENTO UTILIZADO:")
	sectionLine(pdf, tr, fmt.Sprintf("Aeronave (ARP): %s - %s", drone.MarcaModelo, drone.IdentificacaoRegistro))
	sectionLine(pdf, tr, fmt.Sprintf("Altura de Voo: %s metros", formatFloat(app.AlturaVoo)))
	sectionLine(pdf, tr, fmt.Sprintf("Equipamento: %s", firstNonEmpty(params.Equipamento)))
	sectionLine(pdf, tr, fmt.Sprintf("Modelo: %s", firstNonEmpty(params.Modelo)))
	sectionLine(pdf, tr, fmt.Sprintf("Tipo: %s", firstNonEmpty(params.Tipo)))
	sectionLine(pdf, tr, fmt.Sprintf("Ângulo: %s", firstNonEmpty(params.Angulo)))
	sectionLine(pdf, tr, fmt.Sprintf("Largura da Faixa: %s metros", floatOrNA(params.LarguraFaixa)))
	pdf.Ln(3)

	sectionTitle(pdf, tr, "8. OPERADOR/APLICADOR:")
	sectionLine(pdf, tr, fmt.Sprintf("Nome: %s", operator.Nome))
	sectionLine(pdf, tr, fmt.Sprintf("Função: %s", models.OperatorRoleLabel(operator.Funcao)))
	pdf.Ln(3)

	if ro.Observacoes != "" {
		sectionTitle(pdf, tr, "9. OBSERVAÇÕES:")
		sectionLine(pdf, tr, ro.Observacoes)
		pdf.Ln(3)
	}

	sectionTitle(pdf, tr, "10. ASSINATURAS:")
	pdf.Ln(2)
	sectionLine(pdf, tr, fmt.Sprintf("Responsável Técnico: %s", firstNonEmpty(ro.Assinaturas.ResponsavelTecnico.Nome, company.ResponsavelTecnico.Nome)))
	sectionLine(pdf, tr, fmt.Sprintf("CREA: %s", firstNonEmpty(ro.Assinaturas.ResponsavelTecnico.Registro, company.ResponsavelTecnico.CREA)))
	pdf.Ln(4)
	sectionLine(pdf, tr, fmt.Sprintf("Aplicador: %s", firstNonEmpty(ro.Assinaturas.Aplicador.Nome, operator.Nome)))
	sectionLine(pdf, tr, fmt.Sprintf("Registro: %s", firstNonEmpty(ro.Assinaturas.Aplicador.Registro, strOrEmpty(operator.DocumentoRegistro))))

	reportFooter(pdf, tr, company)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render operational report: %w", err)
	}
	return buf.Bytes(), nil
}

// periodLabel describes the filtered date range on the consolidated cover.
func periodLabel(filter *models.ApplicationFilter) string {
	if filter == nil || (filter.DateFrom == nil && filter.DateTo == nil) {
		return "Todos os períodos"
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		return fmt.Sprintf("%s a %s", filter.DateFrom.Format("02/01/2006"), filter.DateTo.Format("02/01/2006"))
	}
	if filter.DateFrom != nil {
		return fmt.Sprintf("A partir de %s", filter.DateFrom.Format("02/01/2006"))
	}
	return fmt.Sprintf("Até %s", filter.DateTo.Format("02/01/2006"))
}

func (s *reportService) ConsolidatedReport(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]byte, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resolved, err := s.exportService.Resolve(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	pdf, tr, titleY := s.newReportPDF(ctx, company)

	// Cover page. Rendered even for an empty result set.
	pdf.SetY(titleY)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, tr("RELATÓRIO CONSOLIDADO DE APLICAÇÕES"), "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, tr(company.RazaoSocial), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Período: %s", periodLabel(filter))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Total de Aplicações: %d", len(resolved))), "", 1, "C", false, 0, "")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Gerado em %s", formatDateTimeBR(time.Now()))), "", 1, "C", false, 0, "")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("SUMÁRIO DE APLICAÇÕES"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, r := range resolved {
		// Keep each summary card on one page.
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}
		app := r.Application
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. Aplicação %d", i+1, i+1)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		sectionLine(pdf, tr, fmt.Sprintf("Data: %s", app.DataHoraInicio.Format("02/01/2006")))
		sectionLine(pdf, tr, fmt.Sprintf("Cliente: %s", r.Client.NomeRazaoSocial))
		sectionLine(pdf, tr, fmt.Sprintf("Propriedade: %s", firstNonEmpty(strOrEmpty(r.Client.PropriedadeFazenda))))
		sectionLine(pdf, tr, fmt.Sprintf("Município: %s/%s", r.Client.Municipio, r.Client.UF))
		sectionLine(pdf, tr, fmt.Sprintf("Cultura: %s", app.CulturaTratada))
		sectionLine(pdf, tr, fmt.Sprintf("Área: %s hectares", formatFloat(app.AreaTratada)))
		sectionLine(pdf, tr, fmt.Sprintf("Produto: %s", app.MarcaComercial))
		pdf.Ln(3)
	}

	reportFooter(pdf, tr, company)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render consolidated report: %w", err)
	}
	return buf.Bytes(), nil
}
