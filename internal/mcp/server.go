package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/ingest"
	"github.com/rostralabs/rostra/internal/domain/project"
)

const serverInstructions = `Rostra tracks a roster of contributors through a
two-stage workflow: each contributor is first assigned, then recorded as
passed or failed. Contributors live in a per-project roster with an active
and an archived partition. Use list_projects and switch_project to pick the
working project; every other tool operates on the current one. Batch tools
(preview_batch, apply_batch, preview_csv, apply_csv) take raw text and report
per-line outcomes without aborting on failures. Export and share tools emit
CSV, a JSON document, or a compressed share payload for the whole roster.`

// ContributorService defines roster operations needed by MCP.
type ContributorService interface {
	Add(ctx context.Context, projectID, email string, target contributor.Target) (*contributor.Contributor, error)
	UpdateStatus(ctx context.Context, projectID, id string, kind contributor.UpdateKind, value string) (*contributor.Contributor, error)
	Archive(ctx context.Context, projectID, id string) (*contributor.Contributor, error)
	Restore(ctx context.Context, projectID, id string) (*contributor.Contributor, error)
	Remove(ctx context.Context, projectID, id string) error
	List(ctx context.Context, projectID string, partition contributor.Partition, opts contributor.ListOptions) ([]contributor.Contributor, error)
	Snapshot(ctx context.Context, projectID string) (contributor.Snapshot, error)
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, name string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Current(ctx context.Context) (*project.Project, error)
	Switch(ctx context.Context, name string) (*project.Project, error)
	Delete(ctx context.Context, name string) (*project.Project, error)
	Import(ctx context.Context, name string, snap contributor.Snapshot) (*project.Project, error)
	ImportShared(ctx context.Context, name string, snap contributor.Snapshot) (*project.Project, error)
}

// IngestService defines batch ingestion operations needed by MCP.
type IngestService interface {
	ParseBulk(ctx context.Context, projectID, raw string, target contributor.Target) ([]ingest.Candidate, error)
	ParseCSV(ctx context.Context, projectID, raw string, target contributor.Target) ([]ingest.Candidate, error)
	Apply(ctx context.Context, projectID string, candidates []ingest.Candidate, target contributor.Target, progress func(done, total int)) ingest.Result
}

// Services contains all domain services needed by MCP.
type Services struct {
	Contributors ContributorService
	Projects     ProjectService
	Ingest       IngestService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "rostra",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
