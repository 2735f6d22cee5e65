package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/legalchunk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
	"github.com/custodia-labs/legalchunk/internal/core/services"
)

const testConfigPath = "/home/test/.legalchunk/config.toml"

// mockChunkingService validates like the real service and returns sampleResult.
type mockChunkingService struct {
	lastReq      domain.ChunkRequest
	lastClassify string
	err          error
}

func (m *mockChunkingService) Chunk(_ context.Context, req domain.ChunkRequest) (*domain.ChunkingResult, error) {
	m.lastReq = req
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return sampleResult(req.UserID, req.ProjectID), nil
}

func (m *mockChunkingService) Classify(_ context.Context, text string) (*domain.Classification, error) {
	m.lastClassify = text
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}
	return &domain.Classification{
		Type:       domain.ResidentialLease,
		Label:      "Bail d'habitation",
		Confidence: 0.82,
		Params: domain.AdaptiveParams{
			Band:  domain.Band{Min: 80, Target: 120, Max: 160},
			Roles: []string{"bailleur", "locataire"},
		},
		Scores: map[domain.DocumentType]float64{
			domain.ResidentialLease: 0.0412,
			domain.CommercialLease:  0.0091,
		},
		Matched: []string{"bailleur", "locataire", "loyer"},
	}, nil
}

func (m *mockChunkingService) DocumentTypes() []driving.DocumentTypeInfo {
	return []driving.DocumentTypeInfo{
		{
			Type:  domain.ReservationContract,
			Label: "Contrat de réservation VEFA",
			Band:  domain.Band{Min: 120, Target: 180, Max: 240},
			Roles: []string{"reservant", "reservataire"},
		},
		{
			Type:  domain.GeneralContract,
			Label: "Contrat général",
			Band:  domain.Band{Min: 100, Target: 150, Max: 200},
		},
	}
}

// mockLoader serves texts keyed by path.
type mockLoader struct {
	files map[string]string
}

func (m *mockLoader) Load(_ context.Context, path string) (string, error) {
	text, ok := m.files[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func sampleResult(userID, projectID string) *domain.ChunkingResult {
	info := domain.DocumentInfo{
		DocumentID: "doc_20150403_120000_0042",
		Title:      "CONTRAT DE BAIL D'HABITATION",
		Date:       "03/04/2015",
		Parties:    map[string]string{"bailleur": "Monsieur Jean DUPONT"},
		Source:     "Bail d'habitation - CONTRAT DE BAIL D'HABITATION - 03/04/2015",
	}
	return &domain.ChunkingResult{
		Success: true,
		Chunks: []domain.ChunkRecord{
			{
				Content:      domain.ChunkContent{Text: "Article 1 - Désignation du logement.", ChunkID: info.DocumentID + "_chunk_001"},
				Metadata:     domain.ChunkMetadata{WordCount: 5, QualityScore: 0.81, ContentType: domain.ContentLegalClause, Entities: domain.NewEntities()},
				DocumentInfo: info,
				UserID:       userID,
				ProjectID:    projectID,
			},
			{
				Content:      domain.ChunkContent{Text: "Le loyer mensuel est fixé à 850 €.", ChunkID: info.DocumentID + "_chunk_002"},
				Metadata:     domain.ChunkMetadata{WordCount: 7, QualityScore: 0.58, ContentType: domain.ContentFinancial, Entities: domain.NewEntities()},
				DocumentInfo: info,
				UserID:       userID,
				ProjectID:    projectID,
			},
		},
		DocumentStats: domain.DocumentStats{
			TotalChunks:         2,
			AvgChunkQuality:     0.695,
			QualityDistribution: domain.QualityDistribution{High: 1, Medium: 1},
			DocumentType:        domain.ResidentialLease,
			Confidence:          0.82,
			DocumentInfo:        info,
		},
	}
}

// setupTestServices installs mocks and in-memory services and returns a
// function restoring the previous ones.
func setupTestServices() func() {
	prev := Services{
		Chunking:   chunkingService,
		Settings:   settingsService,
		History:    historyService,
		Loader:     documentLoader,
		ConfigPath: configPath,
	}

	runs := memory.NewRunStore()
	_ = runs.SaveRun(context.Background(), &domain.RunSummary{
		ID:           "run-1",
		DocumentID:   "doc_20150403_120000_0042",
		DocumentType: domain.ResidentialLease,
		Confidence:   0.82,
		UserID:       "user-1",
		ProjectID:    "project-1",
		WordCount:    412,
		TotalChunks:  4,
		AvgQuality:   0.713,
		Distribution: domain.QualityDistribution{High: 1, Medium: 3},
		Duration:     3 * time.Millisecond,
		CreatedAt:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})

	SetServices(Services{
		Chunking: &mockChunkingService{},
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		History:  services.NewHistoryService(runs),
		Loader: &mockLoader{files: map[string]string{
			"bail.txt": "CONTRAT DE BAIL D'HABITATION\nLe loyer mensuel est fixé à 850 €.",
		}},
		ConfigPath: testConfigPath,
	})

	return func() { SetServices(prev) }
}

// executeCommand runs rootCmd with args and returns its combined output.
func executeCommand(args ...string) (string, error) {
	return executeCommandWithInput("", args...)
}

// executeCommandWithInput runs rootCmd with stdin set to input.
func executeCommandWithInput(input string, args ...string) (string, error) {
	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests do not leak
// values through the package-level commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
