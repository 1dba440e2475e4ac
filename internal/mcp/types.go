package mcp

import (
	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/ingest"
	"github.com/rostralabs/rostra/internal/report"
	"github.com/rostralabs/rostra/internal/share"
)

// ProjectInfo is the project shape returned by tools.
type ProjectInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AddContributorInput struct {
	Email  string `json:"email"`
	Target string `json:"target,omitempty"`
}

type ContributorOutput struct {
	Contributor contributor.Contributor `json:"contributor"`
}

type UpdateStatusInput struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type ContributorIDInput struct {
	ID string `json:"id"`
}

type RemoveContributorOutput struct {
	Removed bool `json:"removed"`
}

type ListContributorsInput struct {
	Partition string `json:"partition,omitempty"`
	Query     string `json:"query,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

type ListContributorsOutput struct {
	Contributors []contributor.Contributor `json:"contributors"`
}

type BatchInput struct {
	Text   string `json:"text"`
	Target string `json:"target,omitempty"`
}

type CSVInput struct {
	CSV    string `json:"csv"`
	Target string `json:"target,omitempty"`
}

type PreviewOutput struct {
	Candidates []ingest.Candidate `json:"candidates"`
	Summary    ingest.Summary     `json:"summary"`
}

type ApplyOutput struct {
	Result ingest.Result `json:"result"`
}

type DailyReportInput struct {
	Date string `json:"date,omitempty"`
}

type EmptyInput struct{}

type FourWeekSummaryOutput struct {
	Weeks []report.WeekBucket `json:"weeks"`
}

type ExportCSVOutput struct {
	CSV string `json:"csv"`
}

type ExportProjectOutput struct {
	Project share.Project `json:"project"`
}

type ImportProjectInput struct {
	Name string `json:"name"`
	JSON string `json:"json"`
}

type ShareLinkOutput struct {
	Payload string `json:"payload"`
}

type ImportShareLinkInput struct {
	Payload string `json:"payload"`
	Name    string `json:"name,omitempty"`
}

type ProjectOutput struct {
	Project ProjectInfo `json:"project"`
}

type ProjectNameInput struct {
	Name string `json:"name"`
}

type ListProjectsOutput struct {
	Projects []ProjectInfo `json:"projects"`
	Current  string        `json:"current"`
}
