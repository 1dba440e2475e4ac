package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/ingest"
	"github.com/rostralabs/rostra/internal/report"
	"github.com/rostralabs/rostra/internal/share"
)

type handlers struct {
	services Services
	now      func() time.Time
}

func registerTools(server *sdkmcp.Server, services Services) {
	h := &handlers{services: services, now: time.Now}
	h.register(server)
}

func (h *handlers) register(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_contributor",
		Description: "Add a single contributor by email, optionally directly assigned or with a passed/failed result",
	}, h.addContributor)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_status",
		Description: "Change a contributor's assignment stage (pending/assigned) or result (passed/failed/empty to clear)",
	}, h.updateStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "archive_contributor",
		Description: "Move a contributor to the archived partition",
	}, h.archiveContributor)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_contributor",
		Description: "Move an archived contributor back to the active partition",
	}, h.restoreContributor)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_contributor",
		Description: "Permanently delete a contributor from the roster",
	}, h.removeContributor)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_contributors",
		Description: "List one partition of the roster, optionally filtered by email substring or stage",
	}, h.listContributors)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "preview_batch",
		Description: "Parse newline-separated emails and classify each line without writing anything",
	}, h.previewBatch)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply_batch",
		Description: "Parse newline-separated emails and add each valid entry, reporting per-line failures",
	}, h.applyBatch)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "preview_csv",
		Description: "Parse CSV text, locate the email column, and classify each row without writing anything",
	}, h.previewCSV)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply_csv",
		Description: "Parse CSV text and add each valid row, reporting per-row failures",
	}, h.applyCSV)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "daily_report",
		Description: "Show active contributors touched on a date with that day's counts (defaults to today)",
	}, h.dailyReport)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "trailing_week_report",
		Description: "Per-day added/passed/failed counts over the last 7 days",
	}, h.trailingWeekReport)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "four_week_summary",
		Description: "Added and completed counts bucketed into the four trailing weeks",
	}, h.fourWeekSummary)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "status_distribution",
		Description: "Counts of pending, assigned, passed and failed contributors",
	}, h.statusDistribution)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_csv",
		Description: "Export the full roster (active then archived) as CSV text",
	}, h.exportCSV)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_project",
		Description: "Export the current project's roster as a JSON document",
	}, h.exportProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_project",
		Description: "Create a new project from an exported JSON document and switch to it",
	}, h.importProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "share_link",
		Description: "Encode the current project's roster as a compact URL-safe share payload",
	}, h.shareLink)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_share_link",
		Description: "Import a share payload as a project, reusing a same-named project if one exists",
	}, h.importShareLink)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new empty project and switch to it",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects and the current selection",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "switch_project",
		Description: "Make the named project the current one",
	}, h.switchProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete the named project and its roster; the first remaining project becomes current",
	}, h.deleteProject)
}

// currentProjectID resolves the project every roster tool operates on.
func (h *handlers) currentProjectID(ctx context.Context) (string, error) {
	proj, err := h.services.Projects.Current(ctx)
	if err != nil {
		return "", mapErr(err)
	}
	return proj.ID, nil
}

func parseTarget(s string) (contributor.Target, error) {
	if s == "" {
		return contributor.TargetPending, nil
	}
	target := contributor.Target(s)
	if !target.Valid() {
		return "", mapErr(contributor.ErrInvalidInput)
	}
	return target, nil
}

func parsePartition(s string) (contributor.Partition, error) {
	switch contributor.Partition(s) {
	case "":
		return contributor.PartitionActive, nil
	case contributor.PartitionActive:
		return contributor.PartitionActive, nil
	case contributor.PartitionArchived:
		return contributor.PartitionArchived, nil
	default:
		return "", mapErr(contributor.ErrInvalidInput)
	}
}

func (h *handlers) addContributor(ctx context.Context, _ *sdkmcp.CallToolRequest, input AddContributorInput) (*sdkmcp.CallToolResult, ContributorOutput, error) {
	// Format is checked here; the store only guards uniqueness and conflicts.
	if !contributor.IsValidEmail(input.Email) {
		return nil, ContributorOutput{}, mapErr(contributor.ErrInvalidEmail)
	}
	target, err := parseTarget(input.Target)
	if err != nil {
		return nil, ContributorOutput{}, err
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ContributorOutput{}, err
	}
	c, err := h.services.Contributors.Add(ctx, projectID, input.Email, target)
	if err != nil {
		return nil, ContributorOutput{}, mapErr(err)
	}
	return nil, ContributorOutput{Contributor: *c}, nil
}

func (h *handlers) updateStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpdateStatusInput) (*sdkmcp.CallToolResult, ContributorOutput, error) {
	kind := contributor.UpdateKind(input.Kind)
	if kind != contributor.UpdateAssignment && kind != contributor.UpdateResult {
		return nil, ContributorOutput{}, mapErr(contributor.ErrInvalidInput)
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ContributorOutput{}, err
	}
	c, err := h.services.Contributors.UpdateStatus(ctx, projectID, input.ID, kind, input.Value)
	if err != nil {
		return nil, ContributorOutput{}, mapErr(err)
	}
	return nil, ContributorOutput{Contributor: *c}, nil
}

func (h *handlers) archiveContributor(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContributorIDInput) (*sdkmcp.CallToolResult, ContributorOutput, error) {
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ContributorOutput{}, err
	}
	c, err := h.services.Contributors.Archive(ctx, projectID, input.ID)
	if err != nil {
		return nil, ContributorOutput{}, mapErr(err)
	}
	return nil, ContributorOutput{Contributor: *c}, nil
}

func (h *handlers) restoreContributor(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContributorIDInput) (*sdkmcp.CallToolResult, ContributorOutput, error) {
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ContributorOutput{}, err
	}
	c, err := h.services.Contributors.Restore(ctx, projectID, input.ID)
	if err != nil {
		return nil, ContributorOutput{}, mapErr(err)
	}
	return nil, ContributorOutput{Contributor: *c}, nil
}

func (h *handlers) removeContributor(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContributorIDInput) (*sdkmcp.CallToolResult, RemoveContributorOutput, error) {
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, RemoveContributorOutput{}, err
	}
	if err := h.services.Contributors.Remove(ctx, projectID, input.ID); err != nil {
		return nil, RemoveContributorOutput{}, mapErr(err)
	}
	return nil, RemoveContributorOutput{Removed: true}, nil
}

func (h *handlers) listContributors(ctx context.Context, _ *sdkmcp.CallToolRequest, input ListContributorsInput) (*sdkmcp.CallToolResult, ListContributorsOutput, error) {
	partition, err := parsePartition(input.Partition)
	if err != nil {
		return nil, ListContributorsOutput{}, err
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ListContributorsOutput{}, err
	}
	list, err := h.services.Contributors.List(ctx, projectID, partition, contributor.ListOptions{
		Query:  input.Query,
		Filter: input.Filter,
	})
	if err != nil {
		return nil, ListContributorsOutput{}, mapErr(err)
	}
	return nil, ListContributorsOutput{Contributors: list}, nil
}

func (h *handlers) previewBatch(ctx context.Context, _ *sdkmcp.CallToolRequest, input BatchInput) (*sdkmcp.CallToolResult, PreviewOutput, error) {
	target, err := parseTarget(input.Target)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	candidates, err := h.services.Ingest.ParseBulk(ctx, projectID, input.Text, target)
	if err != nil {
		return nil, PreviewOutput{}, mapErr(err)
	}
	return nil, PreviewOutput{Candidates: candidates, Summary: ingest.Summarize(candidates)}, nil
}

func (h *handlers) applyBatch(ctx context.Context, _ *sdkmcp.CallToolRequest, input BatchInput) (*sdkmcp.CallToolResult, ApplyOutput, error) {
	target, err := parseTarget(input.Target)
	if err != nil {
		return nil, ApplyOutput{}, err
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ApplyOutput{}, err
	}
	candidates, err := h.services.Ingest.ParseBulk(ctx, projectID, input.Text, target)
	if err != nil {
		return nil, ApplyOutput{}, mapErr(err)
	}
	result := h.services.Ingest.Apply(ctx, projectID, candidates, target, nil)
	return nil, ApplyOutput{Result: result}, nil
}

func (h *handlers) previewCSV(ctx context.Context, _ *sdkmcp.CallToolRequest, input CSVInput) (*sdkmcp.CallToolResult, PreviewOutput, error) {
	target, err := parseTarget(input.Target)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	candidates, err := h.services.Ingest.ParseCSV(ctx, projectID, input.CSV, target)
	if err != nil {
		return nil, PreviewOutput{}, mapErr(err)
	}
	return nil, PreviewOutput{Candidates: candidates, Summary: ingest.Summarize(candidates)}, nil
}

func (h *handlers) applyCSV(ctx context.Context, _ *sdkmcp.CallToolRequest, input CSVInput) (*sdkmcp.CallToolResult, ApplyOutput, error) {
	target, err := parseTarget(input.Target)
	if err != nil {
		return nil, ApplyOutput{}, err
	}
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return nil, ApplyOutput{}, err
	}
	candidates, err := h.services.Ingest.ParseCSV(ctx, projectID, input.CSV, target)
	if err != nil {
		return nil, ApplyOutput{}, mapErr(err)
	}
	result := h.services.Ingest.Apply(ctx, projectID, candidates, target, nil)
	return nil, ApplyOutput{Result: result}, nil
}

func (h *handlers) snapshot(ctx context.Context) (contributor.Snapshot, error) {
	projectID, err := h.currentProjectID(ctx)
	if err != nil {
		return contributor.Snapshot{}, err
	}
	snap, err := h.services.Contributors.Snapshot(ctx, projectID)
	if err != nil {
		return contributor.Snapshot{}, mapErr(err)
	}
	return snap, nil
}

func (h *handlers) dailyReport(ctx context.Context, _ *sdkmcp.CallToolRequest, input DailyReportInput) (*sdkmcp.CallToolResult, report.DailyDetail, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return nil, report.DailyDetail{}, err
	}
	date := input.Date
	if date == "" {
		date = h.now().Format(contributor.DateLayout)
	}
	return nil, report.Daily(snap, date), nil
}

func (h *handlers) trailingWeekReport(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, report.DaySeries, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return nil, report.DaySeries{}, err
	}
	return nil, report.TrailingWeek(snap, h.now()), nil
}

func (h *handlers) fourWeekSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, FourWeekSummaryOutput, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return nil, FourWeekSummaryOutput{}, err
	}
	return nil, FourWeekSummaryOutput{Weeks: report.FourWeekSummary(snap, h.now())}, nil
}

func (h *handlers) statusDistribution(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, report.Distribution, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return nil, report.Distribution{}, err
	}
	return nil, report.StatusDistribution(snap), nil
}

func (h *handlers) exportCSV(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ExportCSVOutput, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return nil, ExportCSVOutput{}, err
	}
	return nil, ExportCSVOutput{CSV: share.ExportCSV(snap)}, nil
}

func (h *handlers) exportProject(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ExportProjectOutput, error) {
	proj, err := h.services.Projects.Current(ctx)
	if err != nil {
		return nil, ExportProjectOutput{}, mapErr(err)
	}
	snap, err := h.services.Contributors.Snapshot(ctx, proj.ID)
	if err != nil {
		return nil, ExportProjectOutput{}, mapErr(err)
	}
	return nil, ExportProjectOutput{Project: share.Project{
		Name:     proj.Name,
		Active:   snap.Active,
		Archived: snap.Archived,
	}}, nil
}

func (h *handlers) importProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input ImportProjectInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	doc, err := share.ParseImport([]byte(input.JSON))
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	name := input.Name
	if name == "" {
		name = doc.Name
	}
	proj, err := h.services.Projects.Import(ctx, name, doc.Snapshot())
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	return nil, ProjectOutput{Project: ProjectInfo{ID: proj.ID, Name: proj.Name}}, nil
}

func (h *handlers) shareLink(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ShareLinkOutput, error) {
	proj, err := h.services.Projects.Current(ctx)
	if err != nil {
		return nil, ShareLinkOutput{}, mapErr(err)
	}
	snap, err := h.services.Contributors.Snapshot(ctx, proj.ID)
	if err != nil {
		return nil, ShareLinkOutput{}, mapErr(err)
	}
	payload, err := share.Encode(share.Project{
		Name:     proj.Name,
		Active:   snap.Active,
		Archived: snap.Archived,
	})
	if err != nil {
		return nil, ShareLinkOutput{}, mapErr(err)
	}
	return nil, ShareLinkOutput{Payload: payload}, nil
}

func (h *handlers) importShareLink(ctx context.Context, _ *sdkmcp.CallToolRequest, input ImportShareLinkInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	doc, err := share.Decode(input.Payload)
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	name := input.Name
	if name == "" {
		name = doc.Name
	}
	proj, err := h.services.Projects.ImportShared(ctx, name, doc.Snapshot())
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	return nil, ProjectOutput{Project: ProjectInfo{ID: proj.ID, Name: proj.Name}}, nil
}

func (h *handlers) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectNameInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	proj, err := h.services.Projects.Create(ctx, input.Name)
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	return nil, ProjectOutput{Project: ProjectInfo{ID: proj.ID, Name: proj.Name}}, nil
}

func (h *handlers) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ListProjectsOutput, error) {
	list, err := h.services.Projects.List(ctx)
	if err != nil {
		return nil, ListProjectsOutput{}, mapErr(err)
	}
	current, err := h.services.Projects.Current(ctx)
	if err != nil {
		return nil, ListProjectsOutput{}, mapErr(err)
	}
	out := ListProjectsOutput{Projects: make([]ProjectInfo, 0, len(list)), Current: current.ID}
	for _, p := range list {
		out.Projects = append(out.Projects, ProjectInfo{ID: p.ID, Name: p.Name})
	}
	return nil, out, nil
}

func (h *handlers) switchProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectNameInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	proj, err := h.services.Projects.Switch(ctx, input.Name)
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	return nil, ProjectOutput{Project: ProjectInfo{ID: proj.ID, Name: proj.Name}}, nil
}

func (h *handlers) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectNameInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	current, err := h.services.Projects.Delete(ctx, input.Name)
	if err != nil {
		return nil, ProjectOutput{}, mapErr(err)
	}
	return nil, ProjectOutput{Project: ProjectInfo{ID: current.ID, Name: current.Name}}, nil
}
